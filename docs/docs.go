// Package docs holds the OpenAPI description served under /swagger. Regenerate with
// swag init -g cmd/app/main.go after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"basePath": "{{.BasePath}}",
	"host": "{{.Host}}",
	"info": {
		"contact": {},
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"version": "{{.Version}}"
	},
	"paths": {
		"/v1/appointments": {
			"get": {
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					},
					{
						"description": "Filter by status",
						"in": "query",
						"name": "status",
						"required": false,
						"type": "string"
					},
					{
						"description": "Filter by user",
						"in": "query",
						"name": "user_id",
						"required": false,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "GetAppointmentsResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get all appointments",
				"tags": [
					"Appointment"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Appointment",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "AppointmentResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Create an appointment",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/assistant": {
			"delete": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Reset the booking assistant",
				"tags": [
					"Appointment"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Chat message",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Send a message to the booking assistant",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/chat": {
			"delete": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Reset the booking chat",
				"tags": [
					"Appointment"
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get the booking chat state",
				"tags": [
					"Appointment"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"description": "Drives the date, time and notes dialogue. The reply echoes the booking gathered so far.",
				"parameters": [
					{
						"description": "Chat message",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Send a booking chat message",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/mine": {
			"get": {
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "GetAppointmentsResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get my appointments",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/{id}": {
			"get": {
				"parameters": [
					{
						"description": "Appointment ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "AppointmentResponse",
						"schema": {
							"type": "object"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get an appointment by ID",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/{id}/cancel": {
			"patch": {
				"description": "Owners may cancel their own appointments.",
				"parameters": [
					{
						"description": "Appointment ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Cancel an appointment",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/{id}/complete": {
			"patch": {
				"parameters": [
					{
						"description": "Appointment ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Mark an appointment as completed",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/{id}/confirm": {
			"patch": {
				"parameters": [
					{
						"description": "Appointment ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Confirm an appointment",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/appointments/{id}/resume": {
			"post": {
				"parameters": [
					{
						"description": "Appointment ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"403": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Reply",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Edit an appointment through the chat",
				"tags": [
					"Appointment"
				]
			}
		},
		"/v1/auth/change-password": {
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Current and new password",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Change password",
				"tags": [
					"Auth"
				]
			}
		},
		"/v1/auth/login": {
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Credentials",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "LoginResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Login",
				"tags": [
					"Auth"
				]
			}
		},
		"/v1/auth/refresh-token": {
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Refresh token",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "RefreshTokenResponse",
						"schema": {
							"type": "object"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Rotate the token pair",
				"tags": [
					"Auth"
				]
			}
		},
		"/v1/auth/register": {
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "New customer",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Register",
				"tags": [
					"Auth"
				]
			}
		},
		"/v1/health": {
			"get": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Status",
						"schema": {
							"type": "object"
						}
					},
					"503": {
						"description": "Status",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Check service health",
				"tags": [
					"Health"
				]
			}
		},
		"/v1/orders": {
			"get": {
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					},
					{
						"description": "Filter by status",
						"in": "query",
						"name": "status",
						"required": false,
						"type": "string"
					},
					{
						"description": "Filter by user",
						"in": "query",
						"name": "user_id",
						"required": false,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "GetOrdersResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get all orders",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/chat": {
			"delete": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ChatResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "ChatResponse",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Reset the order assistant",
				"tags": [
					"Order"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Chat message",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "ChatResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "ChatResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "ChatResponse",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Send a message to the order assistant",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/draft": {
			"get": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OrderResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get the draft order",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/finalize": {
			"post": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OrderResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Finalize the draft order",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/items": {
			"delete": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Product and quantity",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OrderResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Remove a product from the draft order",
				"tags": [
					"Order"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Product and quantity",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OrderResponse",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Add a product to the draft order",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/mine": {
			"get": {
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "GetOrdersResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get my orders",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/{id}": {
			"get": {
				"description": "Users only see their own orders.",
				"parameters": [
					{
						"description": "Order ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OrderResponse",
						"schema": {
							"type": "object"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get an order by ID",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/orders/{id}/complete": {
			"patch": {
				"parameters": [
					{
						"description": "Order ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Mark a pending order as delivered",
				"tags": [
					"Order"
				]
			}
		},
		"/v1/products": {
			"get": {
				"description": "Retrieve products with optional filtering and pagination.",
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					},
					{
						"description": "Filter by name",
						"in": "query",
						"name": "name",
						"required": false,
						"type": "string"
					},
					{
						"description": "Filter by active status",
						"in": "query",
						"name": "active",
						"required": false,
						"type": "boolean"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "List of products",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Get all products",
				"tags": [
					"Product"
				]
			},
			"post": {
				"consumes": [
					"multipart/form-data"
				],
				"description": "Create a product with an optional image stored in object storage.",
				"parameters": [
					{
						"description": "Product name",
						"in": "formData",
						"name": "name",
						"required": true,
						"type": "string"
					},
					{
						"description": "Product description",
						"in": "formData",
						"name": "description",
						"required": false,
						"type": "string"
					},
					{
						"description": "Unit price",
						"in": "formData",
						"name": "price",
						"required": true,
						"type": "number"
					},
					{
						"description": "Whether the product can be ordered",
						"in": "formData",
						"name": "active",
						"required": false,
						"type": "boolean"
					},
					{
						"description": "Product image",
						"in": "formData",
						"name": "image",
						"required": false,
						"type": "file"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Product created successfully",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Create a new product",
				"tags": [
					"Product"
				]
			}
		},
		"/v1/products/catalog": {
			"get": {
				"description": "Every active product sorted by name.",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Catalogue",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Get the product catalogue",
				"tags": [
					"Product"
				]
			}
		},
		"/v1/products/{id}": {
			"delete": {
				"parameters": [
					{
						"description": "Product ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Product deleted successfully",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Delete a product by ID",
				"tags": [
					"Product"
				]
			},
			"get": {
				"parameters": [
					{
						"description": "Product ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Product details",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"summary": "Get a product by ID",
				"tags": [
					"Product"
				]
			},
			"patch": {
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"description": "Product ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"description": "Product name",
						"in": "formData",
						"name": "name",
						"required": false,
						"type": "string"
					},
					{
						"description": "Product description",
						"in": "formData",
						"name": "description",
						"required": false,
						"type": "string"
					},
					{
						"description": "Unit price",
						"in": "formData",
						"name": "price",
						"required": false,
						"type": "number"
					},
					{
						"description": "Whether the product can be ordered",
						"in": "formData",
						"name": "active",
						"required": false,
						"type": "boolean"
					},
					{
						"description": "Replacement image",
						"in": "formData",
						"name": "image",
						"required": false,
						"type": "file"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Product updated successfully",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Update a product by ID",
				"tags": [
					"Product"
				]
			}
		},
		"/v1/users": {
			"get": {
				"parameters": [
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "sort_by",
						"type": "string"
					},
					{
						"in": "query",
						"name": "sort_dir",
						"type": "string"
					},
					{
						"description": "Exact email",
						"in": "query",
						"name": "email",
						"required": false,
						"type": "string"
					},
					{
						"description": "superadmin, admin or user",
						"in": "query",
						"name": "level",
						"required": false,
						"type": "string"
					},
					{
						"description": "Exact phone in E.164",
						"in": "query",
						"name": "phone",
						"required": false,
						"type": "string"
					},
					{
						"description": "Filter by active status",
						"in": "query",
						"name": "active",
						"required": false,
						"type": "boolean"
					},
					{
						"description": "Match part of the name",
						"in": "query",
						"name": "full_name",
						"required": false,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "GetUsersResponse",
						"schema": {
							"type": "object"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "List accounts",
				"tags": [
					"User"
				]
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Account",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Create an account",
				"tags": [
					"User"
				]
			}
		},
		"/v1/users/me": {
			"get": {
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "UserResponse",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get my profile",
				"tags": [
					"User"
				]
			},
			"patch": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Profile fields",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Update my profile",
				"tags": [
					"User"
				]
			}
		},
		"/v1/users/{id}": {
			"delete": {
				"parameters": [
					{
						"description": "User ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Delete an account",
				"tags": [
					"User"
				]
			},
			"get": {
				"parameters": [
					{
						"description": "User ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "UserResponse",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Get an account",
				"tags": [
					"User"
				]
			},
			"patch": {
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "User ID",
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"description": "Fields to change",
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "Message",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"summary": "Update an account",
				"tags": [
					"User"
				]
			}
		}
	},
	"schemes": {{ marshal .Schemes }},
	"securityDefinitions": {
		"BearerAuth": {
			"in": "header",
			"name": "Authorization",
			"type": "apiKey"
		}
	},
	"swagger": "2.0"
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NutriSur API",
	Description:      "Appointments, products and orders for the NutriSur clinic, with chat booking and ordering.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
