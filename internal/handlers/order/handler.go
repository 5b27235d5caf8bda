package order

import (
	"net/http"

	"nutrisur/infras/otel"
	"nutrisur/internal/domains/order/model"
	"nutrisur/internal/domains/order/model/dto"
	"nutrisur/internal/domains/order/service"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"
	"nutrisur/shared/validator"
	"nutrisur/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Order
	chat    service.Chat
	otel    otel.Otel
}

func New(service service.Order, chat service.Chat, otel otel.Otel) Handler {
	return Handler{
		service: service,
		chat:    chat,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/orders", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOrders)
		routerGroup.Get("/mine", handler.GetMyOrders)
		routerGroup.Get("/draft", handler.GetDraft)
		routerGroup.Post("/items", handler.AddProduct)
		routerGroup.Delete("/items", handler.RemoveProduct)
		routerGroup.Post("/finalize", handler.Finalize)
		routerGroup.Post("/chat", handler.Chat)
		routerGroup.Delete("/chat", handler.ResetChat)
		routerGroup.Get("/{id}", handler.GetOrderByID)
		routerGroup.Patch("/{id}/complete", handler.CompleteOrder)
	})
}

// GetDraft returns the caller's open order.
// @Summary Get the draft order
// @Tags Order
// @Produce json
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 500 {object} response.Error
// @Router /v1/orders/draft [get]
// @Security BearerAuth
func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	res, err := handler.service.Draft(ctx, userOf(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get draft order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddProduct adds a product to the draft, merging with an existing line.
// @Summary Add a product to the draft order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.AddProductRequest true "Product and quantity"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/items [post]
// @Security BearerAuth
func (handler *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddProduct")
	defer scope.End()

	req := dto.AddProductRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddProduct(ctx, userOf(r), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to add product to order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveProduct lowers a line's quantity, or drops it when the quantity is omitted.
// @Summary Remove a product from the draft order
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.RemoveProductRequest true "Product and quantity"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/items [delete]
// @Security BearerAuth
func (handler *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveProduct")
	defer scope.End()

	req := dto.RemoveProductRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RemoveProduct(ctx, userOf(r), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to remove product from order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Finalize submits the draft for preparation.
// @Summary Finalize the draft order
// @Tags Order
// @Produce json
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/orders/finalize [post]
// @Security BearerAuth
func (handler *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Finalize")
	defer scope.End()

	res, err := handler.service.Finalize(ctx, userOf(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finalize order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Order " + res.ID + " finalized")

	response.WithJSON(w, http.StatusOK, res)
}

// CompleteOrder
// @Summary Mark a pending order as delivered
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/orders/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("order_id", id).Msg("failed to complete order")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Order completed")
}

// GetOrderByID
// @Summary Get an order by ID
// @Description Users only see their own orders.
// @Tags Order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/orders/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyOrders
// @Summary Get my orders
// @Tags Order
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetOrdersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/orders/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, userOf(r), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrders lists every order for staff.
// @Summary Get all orders
// @Tags Order
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param user_id query string false "Filter by user"
// @Success 200 {object} response.Data[dto.GetOrdersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/orders [get]
// @Security BearerAuth
func (handler *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldStatus, model.FieldUserID} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get orders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Chat lets the assistant edit the draft from a free-text message.
// @Summary Send a message to the order assistant
// @Tags Order
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ChatResponse
// @Failure 500 {object} dto.ChatResponse
// @Router /v1/orders/chat [post]
// @Security BearerAuth
func (handler *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OrderChat")
	defer scope.End()

	req := dto.ChatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("unreadable order chat message")

		response.WithBody(w, http.StatusBadRequest, dto.ChatTechnicalError())

		return
	}

	res, err := handler.chat.Process(ctx, userOf(r), req.Message)
	if err != nil {
		scope.TraceError(err)
		response.WithBody(w, failure.GetCode(err), res)

		return
	}

	scope.SetAttribute("order.chat.status", res.Status)
	response.WithBody(w, http.StatusOK, res)
}

// ResetChat forgets the conversation. The draft itself is kept.
// @Summary Reset the order assistant
// @Tags Order
// @Produce json
// @Success 200 {object} dto.ChatResponse
// @Failure 500 {object} dto.ChatResponse
// @Router /v1/orders/chat [delete]
// @Security BearerAuth
func (handler *Handler) ResetChat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetOrderChat")
	defer scope.End()

	res, err := handler.chat.Reset(ctx, userOf(r))
	if err != nil {
		scope.TraceError(err)
		response.WithBody(w, failure.GetCode(err), res)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}

func userOf(r *http.Request) string {
	user, _ := r.Context().Value(constant.ContextKeyUserID).(string)

	return user
}
