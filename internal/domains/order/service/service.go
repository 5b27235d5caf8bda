package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nutrisur/config"
	"nutrisur/infras/otel"
	notificationModel "nutrisur/internal/domains/notification/model"
	notification "nutrisur/internal/domains/notification/service"
	"nutrisur/internal/domains/order/model"
	"nutrisur/internal/domains/order/model/dto"
	"nutrisur/internal/domains/order/repository"
	product "nutrisur/internal/domains/product/service"
	"nutrisur/shared"
	"nutrisur/shared/cache"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

type Order interface {
	// Draft returns the open draft of the user, creating an empty one when none exists.
	Draft(ctx context.Context, userID string) (dto.OrderResponse, error)
	AddProduct(ctx context.Context, userID string, req dto.AddProductRequest) (dto.OrderResponse, error)
	RemoveProduct(ctx context.Context, userID string, req dto.RemoveProductRequest) (dto.OrderResponse, error)
	Finalize(ctx context.Context, userID string) (dto.OrderResponse, error)
	Complete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	GetMine(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetOrdersResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo         repository.Order
	product      product.Product
	notification notification.Notification
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Order,
	product product.Product,
	notification notification.Notification,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Order {
	return &serviceImpl{
		repo:         repo,
		product:      product,
		notification: notification,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Draft(ctx context.Context, userID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Draft")
	defer scope.End()
	defer scope.TraceIfError(&err)

	order, items, err := s.draft(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(order, items)

	return res, nil
}

func (s *serviceImpl) AddProduct(ctx context.Context, userID string, req dto.AddProductRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.AddProduct")
	defer scope.End()
	defer scope.TraceIfError(&err)

	item, err := s.product.Get(ctx, req.ProductID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !item.Active {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s is not available", item.Name)) // nolint:wrapcheck
	}

	order, items, err := s.draft(ctx, userID)
	if err != nil {
		return res, err
	}

	items = model.AddLine(items, dto.NewItem(order.ID, item.ID, item.Name, req.Quantity, item.Price, userID))

	return s.save(ctx, order, items, userID)
}

func (s *serviceImpl) RemoveProduct(ctx context.Context, userID string, req dto.RemoveProductRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.RemoveProduct")
	defer scope.End()
	defer scope.TraceIfError(&err)

	order, items, err := s.draft(ctx, userID)
	if err != nil {
		return res, err
	}

	items, found := model.RemoveLine(items, req.ProductID, req.Quantity)
	if !found {
		return res, failure.NotFound(model.ItemEntityName) // nolint:wrapcheck
	}

	return s.save(ctx, order, items, userID)
}

func (s *serviceImpl) Finalize(ctx context.Context, userID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Finalize")
	defer scope.End()
	defer scope.TraceIfError(&err)

	order, items, err := s.draft(ctx, userID)
	if err != nil {
		return res, err
	}

	if len(items) == 0 {
		return res, failure.BadRequestFromString("the order is empty") // nolint:wrapcheck
	}

	order.Total = model.Total(items)

	if err = s.setStatus(ctx, order.ID, model.StatusPending, userID); err != nil {
		return res, err
	}

	order.Status = model.StatusPending
	res.FromModel(order, items)

	s.afterChange(ctx, notificationModel.EventOrderPending, order, items)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Complete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if order.Status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("order cannot move from %s to %s", order.Status, model.StatusCompleted)) // nolint:wrapcheck
	}

	items, err := s.repo.Items(ctx, order.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return fmt.Errorf("failed to get order items: %w", err)
	}

	if err = s.setStatus(ctx, order.ID, model.StatusCompleted, user); err != nil {
		return err
	}

	order.Status = model.StatusCompleted

	s.afterChange(ctx, notificationModel.EventOrderCompleted, order, items)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if role == constant.RoleUser && order.UserID != user {
		return res, failure.ResourceRestrictedError
	}

	items, err := s.repo.Items(ctx, order.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return res, fmt.Errorf("failed to get order items: %w", err)
	}

	res.FromModel(order, items)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, userID string, req gDto.QueryParams) (dto.GetOrdersResponse, error) {
	if req.SortBy == constant.Empty {
		req.SortBy = "created_at"
		req.SortDir = gDto.SortDirDesc
	}

	return s.GetAll(ctx, req, shared.FilterByID(userID, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".order.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) draft(ctx context.Context, userID string) (model.Order, []model.OrderItem, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusDraft,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	order, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get draft order")

		return order, nil, fmt.Errorf("failed to get draft order: %w", err)
	}

	if order.ID == constant.Empty {
		order = dto.NewDraft(userID)

		if err = s.repo.Insert(ctx, order); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to create draft order")

			return order, nil, fmt.Errorf("failed to create draft order: %w", err)
		}

		go s.invalidate(context.WithoutCancel(ctx))

		return order, nil, nil
	}

	items, err := s.repo.Items(ctx, order.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return order, nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return order, items, nil
}

func (s *serviceImpl) save(ctx context.Context, order model.Order, items []model.OrderItem, user string) (res dto.OrderResponse, err error) {
	order.Total = model.Total(items)

	if err = s.repo.ReplaceItems(ctx, order.ID, items, order.Total, user); err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to save order items")

		return res, fmt.Errorf("failed to save order items: %w", err)
	}

	res.FromModel(order, items)

	go s.invalidate(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status, user string) error {
	fields := shared.TransformFields(dto.UpdateStatusRequest{Status: status}, user)

	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("status", status).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

func (s *serviceImpl) afterChange(ctx context.Context, eventType string, order model.Order, items []model.OrderItem) {
	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c)

		total := order.Total
		event := notificationModel.Event{
			Type:     eventType,
			EntityID: order.ID,
			UserID:   order.UserID,
			Status:   order.Status,
			Total:    &total,
			Summary:  model.Summary(items),
		}

		if err := s.notification.Publish(c, event); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID).Msg("order event not delivered")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllOrder)
	shared.InvalidateCaches(ctx, s.cache, cacheCountOrder)
}
