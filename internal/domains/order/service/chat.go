package service

//go:generate go run go.uber.org/mock/mockgen -source=./chat.go -destination=./mocks/chat_mock.go -package=mocks

import (
	"context"
	"net/http"
	"strings"

	"nutrisur/infras/otel"
	assistantModel "nutrisur/internal/domains/assistant/model"
	assistant "nutrisur/internal/domains/assistant/service"
	"nutrisur/internal/domains/order/model/dto"
	productDto "nutrisur/internal/domains/product/model/dto"
	product "nutrisur/internal/domains/product/service"
	"nutrisur/shared/constant"
	"nutrisur/shared/failure"
	"nutrisur/shared/session"

	"github.com/rs/zerolog/log"
)

const (
	SessionPrefixOrderChat = "order:chat"

	// stored turns, the assistant trims further to its own window
	historyCap = 60
)

// Chat drives the draft order from free-text messages.
type Chat interface {
	Process(ctx context.Context, userID, message string) (dto.ChatResponse, error)
	Reset(ctx context.Context, userID string) (dto.ChatResponse, error)
}

type chatImpl struct {
	history   session.Store[[]assistantModel.HistoryEntry]
	order     Order
	product   product.Product
	assistant assistant.Assistant
	otel      otel.Otel
}

func NewChat(
	history session.Store[[]assistantModel.HistoryEntry],
	order Order,
	product product.Product,
	assistant assistant.Assistant,
	otel otel.Otel,
) Chat {
	return &chatImpl{
		history:   history,
		order:     order,
		product:   product,
		assistant: assistant,
		otel:      otel,
	}
}

func (c *chatImpl) Process(ctx context.Context, userID, message string) (res dto.ChatResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Chat")
	defer scope.End()
	defer scope.TraceIfError(&err)

	history, _, err := c.history.Load(ctx, userID)
	if err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	catalog, err := c.product.Catalog(ctx)
	if err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	draft, err := c.order.Draft(ctx, userID)
	if err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	extraction := c.assistant.ExtractOrder(ctx, userID, message, catalogItems(catalog), orderState(draft), history)
	if extraction.Failed {
		return dto.ChatResponse{Status: dto.ChatStatusError, BotReply: extraction.TextReply, Order: &draft}, nil
	}

	scope.SetAttributes(map[string]any{
		"order.actions":  len(extraction.Actions),
		"order.finalize": extraction.Finalize,
	})

	for _, action := range extraction.Actions {
		updated, applied, err := c.apply(ctx, userID, action, catalog)
		if err != nil {
			return dto.ChatTechnicalError(), failure.InternalError(err)
		}

		if applied {
			draft = updated
		}
	}

	res = dto.ChatResponse{Status: dto.ChatStatusOK, BotReply: extraction.TextReply, Order: &draft}

	if extraction.Finalize {
		finalized, err := c.order.Finalize(ctx, userID)

		switch {
		case err == nil:
			res.Status = dto.ChatStatusFinalized
			res.Order = &finalized

			if err = c.history.Delete(ctx, userID); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("failed to clear order chat history")
			}

			return res, nil
		case failure.GetCode(err) == http.StatusBadRequest:
			log.Info().Str("user_id", userID).Msg("finalize requested on an empty order")
		default:
			return dto.ChatTechnicalError(), failure.InternalError(err)
		}
	}

	history = append(history,
		assistantModel.HistoryEntry{Role: assistantModel.RoleUser, Content: message},
		assistantModel.HistoryEntry{Role: assistantModel.RoleAssistant, Content: extraction.TextReply},
	)

	if len(history) > historyCap {
		history = history[len(history)-historyCap:]
	}

	if err = c.history.Save(ctx, userID, history); err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	return res, nil
}

func (c *chatImpl) Reset(ctx context.Context, userID string) (res dto.ChatResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.ChatReset")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = c.history.Delete(ctx, userID); err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	draft, err := c.order.Draft(ctx, userID)
	if err != nil {
		return dto.ChatTechnicalError(), failure.InternalError(err)
	}

	return dto.ChatResponse{Status: dto.ChatStatusReset, BotReply: dto.ChatResetReply, Order: &draft}, nil
}

// apply reports applied=false for actions that name nothing on the menu or that
// the order rejects as a client error. Only server failures are returned.
func (c *chatImpl) apply(
	ctx context.Context,
	userID string,
	action assistantModel.OrderAction,
	catalog []productDto.ProductResponse,
) (dto.OrderResponse, bool, error) {
	item, ok := MatchProduct(catalog, action.ProductName)
	if !ok {
		log.Info().Str("user_id", userID).Str("product", action.ProductName).Msg("order chat named an unknown product")

		return dto.OrderResponse{}, false, nil
	}

	var (
		res dto.OrderResponse
		err error
	)

	switch strings.ToLower(action.Type) {
	case assistantModel.ActionAdd:
		res, err = c.order.AddProduct(ctx, userID, dto.AddProductRequest{ProductID: item.ID, Quantity: max(action.Quantity, 1)})
	case assistantModel.ActionRemove:
		res, err = c.order.RemoveProduct(ctx, userID, dto.RemoveProductRequest{ProductID: item.ID, Quantity: max(action.Quantity, 0)})
	default:
		log.Info().Str("user_id", userID).Str("action", action.Type).Msg("order chat sent an unknown action")

		return res, false, nil
	}

	if err != nil {
		if failure.GetCode(err) < http.StatusInternalServerError {
			log.Info().Err(err).Str("user_id", userID).Str("product", item.Name).Msg("order chat action rejected")

			return res, false, nil
		}

		return res, false, err
	}

	return res, true, nil
}

// MatchProduct resolves a free-text product name against the catalogue: an exact
// case-insensitive match wins, otherwise the first name containing the text or
// contained in it.
func MatchProduct(catalog []productDto.ProductResponse, name string) (productDto.ProductResponse, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == constant.Empty {
		return productDto.ProductResponse{}, false
	}

	for _, item := range catalog {
		if strings.EqualFold(item.Name, needle) {
			return item, true
		}
	}

	for _, item := range catalog {
		candidate := strings.ToLower(item.Name)
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return item, true
		}
	}

	return productDto.ProductResponse{}, false
}

func catalogItems(catalog []productDto.ProductResponse) []assistantModel.CatalogItem {
	items := make([]assistantModel.CatalogItem, len(catalog))
	for i, item := range catalog {
		items[i] = assistantModel.CatalogItem{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
		}
	}

	return items
}

func orderState(order dto.OrderResponse) assistantModel.OrderState {
	state := assistantModel.OrderState{
		Lines: make([]assistantModel.OrderLine, len(order.Items)),
		Total: order.Total,
	}

	for i, item := range order.Items {
		state.Lines[i] = assistantModel.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		}
	}

	return state
}
