package dto

import (
	"nutrisur/internal/domains/order/model"
	"nutrisur/shared"
	gDto "nutrisur/shared/dto"
	gModel "nutrisur/shared/model"
	"nutrisur/shared/timezone"

	"github.com/google/uuid"
)

type AddProductRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1,max=99"`
}

type RemoveProductRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// zero removes the whole line
	Quantity int `json:"quantity" validate:"omitempty,min=0,max=99"`
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending completed"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

const (
	ChatStatusOK        = "ok"
	ChatStatusFinalized = "finalized"
	ChatStatusReset     = "reset"
	ChatStatusError     = "error"

	ChatTechnicalErrorReply = "Technical error: the message could not be processed. Please try again."
	ChatResetReply          = "Conversation cleared. Your current order is kept, tell me what you would like."
)

type ChatResponse struct {
	Status   string         `json:"status"`
	BotReply string         `json:"botReply"`
	Order    *OrderResponse `json:"order"`
}

func ChatTechnicalError() ChatResponse {
	return ChatResponse{Status: ChatStatusError, BotReply: ChatTechnicalErrorReply}
}

// NewDraft builds an empty draft owned by userID.
func NewDraft(userID string) model.Order {
	return model.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		Status:   model.StatusDraft,
		Metadata: gModel.NewMetadata(userID, timezone.Now()),
	}
}

// NewItem builds a line for orderID at the product's current price.
func NewItem(orderID, productID, productName string, quantity int, unitPrice float64, user string) model.OrderItem {
	return model.OrderItem{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID     string              `json:"id"`
	UserID string              `json:"user_id"`
	Status string              `json:"status"`
	Total  float64             `json:"total"`
	Items  []OrderItemResponse `json:"items"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(order model.Order, items []model.OrderItem) {
	r.ID = order.ID
	r.UserID = order.UserID
	r.Status = order.Status
	r.Total = order.Total
	r.Metadata.FromModel(order.Metadata)

	r.Items = make([]OrderItemResponse, len(items))
	for i, item := range items {
		r.Items[i] = OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		}
	}
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

// FromModels lists orders without their lines.
func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod, nil)
	}
}
