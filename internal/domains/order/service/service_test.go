package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"nutrisur/config"
	"nutrisur/infras/otel/mocks"
	notificationMocks "nutrisur/internal/domains/notification/mocks"
	notificationModel "nutrisur/internal/domains/notification/model"
	orderMocks "nutrisur/internal/domains/order/mocks"
	"nutrisur/internal/domains/order/model"
	"nutrisur/internal/domains/order/model/dto"
	"nutrisur/internal/domains/order/service"
	productDto "nutrisur/internal/domains/product/model/dto"
	productMocks "nutrisur/internal/domains/product/service/mocks"
	cacheMocks "nutrisur/shared/cache/mocks"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	userID    = "user-1"
	productID = "0b6c1b8e-6a0f-4a57-9df3-5a3c3c1d0a11"
)

type fixture struct {
	repo         *orderMocks.MockOrder
	product      *productMocks.MockProduct
	cache        *cacheMocks.MockRedisCache
	notification *notificationMocks.MockNotification
	events       chan notificationModel.Event
	svc          service.Order
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         orderMocks.NewMockOrder(ctrl),
		product:      productMocks.NewMockProduct(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		notification: notificationMocks.NewMockNotification(ctrl),
		events:       make(chan notificationModel.Event, 4),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.product, f.notification, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.notification.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event notificationModel.Event) error {
			f.events <- event

			return nil
		}).
		AnyTimes()

	return f
}

func (f fixture) expectDraft(order model.Order, items []model.OrderItem) {
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(order, nil)
	f.repo.EXPECT().Items(gomock.Any(), order.ID).Return(items, nil)
}

func (f fixture) waitEvent(t *testing.T) notificationModel.Event {
	t.Helper()

	select {
	case event := <-f.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no event published")

		return notificationModel.Event{}
	}
}

func draftOrder() model.Order {
	return model.Order{ID: "order-1", UserID: userID, Status: model.StatusDraft}
}

func bowl(quantity int) model.OrderItem {
	return model.OrderItem{ID: "item-1", OrderID: "order-1", ProductID: productID, ProductName: "Green bowl", Quantity: quantity, UnitPrice: 7.5}
}

func userCtx(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestOrderService_Draft(t *testing.T) {
	t.Run("creates an empty draft", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Order{}, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order model.Order) error {
				assert.Equal(t, userID, order.UserID)
				assert.Equal(t, model.StatusDraft, order.Status)

				return nil
			})

		res, err := f.svc.Draft(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusDraft, res.Status)
		assert.Empty(t, res.Items)
	})

	t.Run("returns the existing draft with its lines", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(model.Order{ID: "order-1", UserID: userID, Status: model.StatusDraft, Total: 15}, []model.OrderItem{bowl(2)})

		res, err := f.svc.Draft(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "order-1", res.ID)
		require.Len(t, res.Items, 1)
		assert.InDelta(t, 15.0, res.Items[0].Subtotal, 0.001)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Order{}, errors.New("db down"))

		_, err := f.svc.Draft(context.Background(), userID)

		require.Error(t, err)
	})
}

func TestOrderService_AddProduct(t *testing.T) {
	req := dto.AddProductRequest{ProductID: productID, Quantity: 3}

	t.Run("merges into the existing line", func(t *testing.T) {
		f := newFixture(t)

		f.product.EXPECT().Get(gomock.Any(), productID).Return(productDto.ProductResponse{ID: productID, Name: "Green bowl", Price: 7.5, Active: true}, nil)
		f.expectDraft(draftOrder(), []model.OrderItem{bowl(2)})
		f.repo.EXPECT().
			ReplaceItems(gomock.Any(), "order-1", gomock.Any(), 37.5, userID).
			DoAndReturn(func(_ context.Context, _ string, items []model.OrderItem, _ float64, _ string) error {
				require.Len(t, items, 1)
				assert.Equal(t, 5, items[0].Quantity)

				return nil
			})

		res, err := f.svc.AddProduct(context.Background(), userID, req)

		require.NoError(t, err)
		assert.InDelta(t, 37.5, res.Total, 0.001)
	})

	t.Run("inactive product", func(t *testing.T) {
		f := newFixture(t)

		f.product.EXPECT().Get(gomock.Any(), productID).Return(productDto.ProductResponse{ID: productID, Name: "Green bowl"}, nil)

		_, err := f.svc.AddProduct(context.Background(), userID, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(t)

		f.product.EXPECT().Get(gomock.Any(), productID).Return(productDto.ProductResponse{}, failure.NotFound("product"))

		_, err := f.svc.AddProduct(context.Background(), userID, req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("save failure", func(t *testing.T) {
		f := newFixture(t)

		f.product.EXPECT().Get(gomock.Any(), productID).Return(productDto.ProductResponse{ID: productID, Name: "Green bowl", Price: 7.5, Active: true}, nil)
		f.expectDraft(draftOrder(), nil)
		f.repo.EXPECT().ReplaceItems(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("tx aborted"))

		_, err := f.svc.AddProduct(context.Background(), userID, req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestOrderService_RemoveProduct(t *testing.T) {
	t.Run("decrements", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), []model.OrderItem{bowl(2)})
		f.repo.EXPECT().ReplaceItems(gomock.Any(), "order-1", gomock.Len(1), 7.5, userID).Return(nil)

		res, err := f.svc.RemoveProduct(context.Background(), userID, dto.RemoveProductRequest{ProductID: productID, Quantity: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Items[0].Quantity)
	})

	t.Run("drops the line", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), []model.OrderItem{bowl(2)})
		f.repo.EXPECT().ReplaceItems(gomock.Any(), "order-1", gomock.Len(0), 0.0, userID).Return(nil)

		res, err := f.svc.RemoveProduct(context.Background(), userID, dto.RemoveProductRequest{ProductID: productID})

		require.NoError(t, err)
		assert.Empty(t, res.Items)
	})

	t.Run("not in the order", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), nil)

		_, err := f.svc.RemoveProduct(context.Background(), userID, dto.RemoveProductRequest{ProductID: productID})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOrderService_Finalize(t *testing.T) {
	t.Run("moves the draft to pending and notifies", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), []model.OrderItem{bowl(2)})
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusPending, fields[model.FieldStatus])

				return nil
			})

		res, err := f.svc.Finalize(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)

		event := f.waitEvent(t)
		assert.Equal(t, notificationModel.EventOrderPending, event.Type)
		assert.Equal(t, "order-1", event.EntityID)
		require.NotNil(t, event.Total)
		assert.InDelta(t, 15.0, *event.Total, 0.001)
		assert.Contains(t, event.Summary, "2 x Green bowl")
	})

	t.Run("empty order", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), nil)

		_, err := f.svc.Finalize(context.Background(), userID)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestOrderService_Complete(t *testing.T) {
	t.Run("pending order", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Order{ID: "order-1", UserID: userID, Status: model.StatusPending, Total: 15}, nil)
		f.repo.EXPECT().Items(gomock.Any(), "order-1").Return([]model.OrderItem{bowl(2)}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Complete(userCtx("admin-1", constant.RoleAdmin), "order-1"))

		event := f.waitEvent(t)
		assert.Equal(t, notificationModel.EventOrderCompleted, event.Type)
		assert.Equal(t, model.StatusCompleted, event.Status)
	})

	t.Run("draft cannot complete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(draftOrder(), nil)

		err := f.svc.Complete(userCtx("admin-1", constant.RoleAdmin), "order-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Order{}, nil)

		err := f.svc.Complete(userCtx("admin-1", constant.RoleAdmin), "order-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOrderService_Get(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), []model.OrderItem{bowl(1)})

		res, err := f.svc.Get(userCtx(userID, constant.RoleUser), "order-1")

		require.NoError(t, err)
		assert.Len(t, res.Items, 1)
	})

	t.Run("another user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(draftOrder(), nil)

		_, err := f.svc.Get(userCtx("user-2", constant.RoleUser), "order-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("admin sees any order", func(t *testing.T) {
		f := newFixture(t)

		f.expectDraft(draftOrder(), nil)

		_, err := f.svc.Get(userCtx("admin-1", constant.RoleAdmin), "order-1")

		require.NoError(t, err)
	})
}

func TestOrderService_GetMine(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Order, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Contains(t, args, model.FieldUserID)

			return []model.Order{{ID: "order-1", UserID: userID, Status: model.StatusPending}}, nil
		})

	res, err := f.svc.GetMine(context.Background(), userID, gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Orders, 1)
}
