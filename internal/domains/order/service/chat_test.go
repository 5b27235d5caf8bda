package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"nutrisur/infras/otel/mocks"
	assistantModel "nutrisur/internal/domains/assistant/model"
	assistantMocks "nutrisur/internal/domains/assistant/service/mocks"
	"nutrisur/internal/domains/order/model/dto"
	"nutrisur/internal/domains/order/service"
	orderServiceMocks "nutrisur/internal/domains/order/service/mocks"
	productDto "nutrisur/internal/domains/product/model/dto"
	productMocks "nutrisur/internal/domains/product/service/mocks"
	"nutrisur/shared/failure"
	sessionMocks "nutrisur/shared/session/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var catalog = []productDto.ProductResponse{
	{ID: productID, Name: "Green bowl", Price: 7.5, Active: true},
	{ID: "p-toast", Name: "Avocado toast", Price: 5, Active: true},
}

type chatFixture struct {
	history   *sessionMocks.MockStore[[]assistantModel.HistoryEntry]
	order     *orderServiceMocks.MockOrder
	product   *productMocks.MockProduct
	assistant *assistantMocks.MockAssistant
	chat      service.Chat
}

func newChatFixture(t *testing.T, history []assistantModel.HistoryEntry) chatFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := chatFixture{
		history:   sessionMocks.NewMockStore[[]assistantModel.HistoryEntry](ctrl),
		order:     orderServiceMocks.NewMockOrder(ctrl),
		product:   productMocks.NewMockProduct(ctrl),
		assistant: assistantMocks.NewMockAssistant(ctrl),
	}

	f.chat = service.NewChat(f.history, f.order, f.product, f.assistant, mocks.NewOtel())

	f.history.EXPECT().Load(gomock.Any(), userID).Return(history, history != nil, nil)
	f.product.EXPECT().Catalog(gomock.Any()).Return(catalog, nil)
	f.order.EXPECT().Draft(gomock.Any(), userID).Return(dto.OrderResponse{ID: "order-1", Status: "draft"}, nil)

	return f
}

func TestChat_Process(t *testing.T) {
	t.Run("extraction failure keeps the order", func(t *testing.T) {
		f := newChatFixture(t, nil)

		f.assistant.EXPECT().
			ExtractOrder(gomock.Any(), userID, "hola", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assistantModel.OrderExtraction{TextReply: "fallback", Failed: true})

		res, err := f.chat.Process(context.Background(), userID, "hola")

		require.NoError(t, err)
		assert.Equal(t, dto.ChatStatusError, res.Status)
		assert.Equal(t, "fallback", res.BotReply)
		require.NotNil(t, res.Order)
		assert.Equal(t, "order-1", res.Order.ID)
	})

	t.Run("applies actions by fuzzy name and stores the turn", func(t *testing.T) {
		previous := []assistantModel.HistoryEntry{{Role: assistantModel.RoleUser, Content: "hi"}}
		f := newChatFixture(t, previous)

		f.assistant.EXPECT().
			ExtractOrder(gomock.Any(), userID, "two bowls and no toast", gomock.Any(), gomock.Any(), previous).
			DoAndReturn(func(_ context.Context, _, _ string, items []assistantModel.CatalogItem, _ assistantModel.OrderState, _ []assistantModel.HistoryEntry) assistantModel.OrderExtraction {
				assert.Len(t, items, 2)

				return assistantModel.OrderExtraction{
					TextReply: "Added two green bowls.",
					Actions: []assistantModel.OrderAction{
						{Type: "ADD", ProductName: "green BOWL", Quantity: 2},
						{Type: "remove", ProductName: "toast"},
						{Type: "add", ProductName: "pizza", Quantity: 1},
					},
				}
			})
		f.order.EXPECT().
			AddProduct(gomock.Any(), userID, dto.AddProductRequest{ProductID: productID, Quantity: 2}).
			Return(dto.OrderResponse{ID: "order-1", Total: 15}, nil)
		f.order.EXPECT().
			RemoveProduct(gomock.Any(), userID, dto.RemoveProductRequest{ProductID: "p-toast"}).
			Return(dto.OrderResponse{}, failure.NotFound("order item"))
		f.history.EXPECT().
			Save(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, history []assistantModel.HistoryEntry) error {
				require.Len(t, history, 3)
				assert.Equal(t, assistantModel.RoleAssistant, history[2].Role)
				assert.Equal(t, "Added two green bowls.", history[2].Content)

				return nil
			})

		res, err := f.chat.Process(context.Background(), userID, "two bowls and no toast")

		require.NoError(t, err)
		assert.Equal(t, dto.ChatStatusOK, res.Status)
		assert.InDelta(t, 15.0, res.Order.Total, 0.001)
	})

	t.Run("finalize clears the history", func(t *testing.T) {
		f := newChatFixture(t, nil)

		f.assistant.EXPECT().
			ExtractOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assistantModel.OrderExtraction{TextReply: "Done!", Finalize: true})
		f.order.EXPECT().Finalize(gomock.Any(), userID).Return(dto.OrderResponse{ID: "order-1", Status: "pending"}, nil)
		f.history.EXPECT().Delete(gomock.Any(), userID).Return(nil)

		res, err := f.chat.Process(context.Background(), userID, "that's all")

		require.NoError(t, err)
		assert.Equal(t, dto.ChatStatusFinalized, res.Status)
		assert.Equal(t, "pending", res.Order.Status)
	})

	t.Run("finalize on an empty order keeps chatting", func(t *testing.T) {
		f := newChatFixture(t, nil)

		f.assistant.EXPECT().
			ExtractOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assistantModel.OrderExtraction{TextReply: "Your order is empty.", Finalize: true})
		f.order.EXPECT().Finalize(gomock.Any(), userID).Return(dto.OrderResponse{}, failure.BadRequestFromString("the order is empty"))
		f.history.EXPECT().Save(gomock.Any(), userID, gomock.Len(2)).Return(nil)

		res, err := f.chat.Process(context.Background(), userID, "checkout")

		require.NoError(t, err)
		assert.Equal(t, dto.ChatStatusOK, res.Status)
	})

	t.Run("server failure while applying", func(t *testing.T) {
		f := newChatFixture(t, nil)

		f.assistant.EXPECT().
			ExtractOrder(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assistantModel.OrderExtraction{Actions: []assistantModel.OrderAction{{Type: "add", ProductName: "Avocado toast", Quantity: 1}}})
		f.order.EXPECT().AddProduct(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.OrderResponse{}, errors.New("db down"))

		res, err := f.chat.Process(context.Background(), userID, "toast")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, dto.ChatTechnicalErrorReply, res.BotReply)
	})
}

func TestChat_ProcessHistoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := sessionMocks.NewMockStore[[]assistantModel.HistoryEntry](ctrl)

	chat := service.NewChat(history, orderServiceMocks.NewMockOrder(ctrl), productMocks.NewMockProduct(ctrl), assistantMocks.NewMockAssistant(ctrl), mocks.NewOtel())

	history.EXPECT().Load(gomock.Any(), userID).Return(nil, false, errors.New("redis down"))

	res, err := chat.Process(context.Background(), userID, "hi")

	require.Error(t, err)
	assert.Equal(t, dto.ChatStatusError, res.Status)
}

func TestChat_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := sessionMocks.NewMockStore[[]assistantModel.HistoryEntry](ctrl)
	order := orderServiceMocks.NewMockOrder(ctrl)

	chat := service.NewChat(history, order, productMocks.NewMockProduct(ctrl), assistantMocks.NewMockAssistant(ctrl), mocks.NewOtel())

	history.EXPECT().Delete(gomock.Any(), userID).Return(nil)
	order.EXPECT().Draft(gomock.Any(), userID).Return(dto.OrderResponse{ID: "order-1"}, nil)

	res, err := chat.Reset(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, dto.ChatStatusReset, res.Status)
	assert.Equal(t, "order-1", res.Order.ID)
}

func TestMatchProduct(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{name: "exact ignoring case", input: "AVOCADO TOAST", wantID: "p-toast", wantOK: true},
		{name: "partial", input: "bowl", wantID: productID, wantOK: true},
		{name: "longer phrase", input: "a green bowl please", wantID: productID, wantOK: true},
		{name: "unknown", input: "pizza"},
		{name: "blank", input: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := service.MatchProduct(catalog, tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}
