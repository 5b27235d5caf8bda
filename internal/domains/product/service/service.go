package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nutrisur/config"
	"nutrisur/infras/otel"
	"nutrisur/infras/s3"
	"nutrisur/internal/domains/product/model"
	"nutrisur/internal/domains/product/model/dto"
	"nutrisur/internal/domains/product/repository"
	"nutrisur/shared"
	"nutrisur/shared/cache"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProduct    = "product:get"
	cacheGetAllProduct = "product:gets"
	cacheCountProduct  = "product:count"
	cacheCatalog       = "product:catalog"

	catalogLimit = 200
)

type Product interface {
	Create(ctx context.Context, req dto.CreateProductRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProductsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ProductResponse, error)
	Update(ctx context.Context, req dto.UpdateProductRequest, id string) error
	Delete(ctx context.Context, id string) error
	// Catalog lists every active product, sorted by name.
	Catalog(ctx context.Context) ([]dto.ProductResponse, error)
}

type serviceImpl struct {
	repo    repository.Product
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	storage s3.Storage
}

func New(repo repository.Product, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, storage s3.Storage) Product {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		storage: storage,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProductRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty

	if req.Image != nil {
		imageURL, err = s.storage.Upload(ctx, model.EntityName, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload product image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create product")

		s.discardImage(ctx, imageURL)

		return fmt.Errorf("failed to create product: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProduct, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for products")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, fmt.Errorf("failed to count products: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, fmt.Errorf("failed to get products: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save products to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProduct, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, fmt.Errorf("failed to count products: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetProduct, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for product")

		return res, nil
	}

	product, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return res, fmt.Errorf("failed to get product: %w", err)
	}

	if product.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(product)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProductRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return fmt.Errorf("failed to get product: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	imageURL := constant.Empty

	if req.Image != nil {
		imageURL, err = s.storage.Upload(ctx, model.EntityName, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload product image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update product")

		s.discardImage(ctx, imageURL)

		return fmt.Errorf("failed to update product: %w", err)
	}

	// the previous image is only dropped once the row points at the new one
	if imageURL != constant.Empty {
		s.discardImage(ctx, current.Image)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get product")

		return fmt.Errorf("failed to get product: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("product is part of existing orders, deactivate it instead")
		}

		log.Error().Err(err).Msg("failed to delete product")

		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.discardImage(ctx, current.Image)

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Catalog(ctx context.Context) (res []dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".product.Catalog")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, cacheCatalog, &res); err == nil {
		return res, nil
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   catalogLimit,
		SortBy:  model.FieldName,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get product catalog")

		return nil, fmt.Errorf("failed to get product catalog: %w", err)
	}

	res = make([]dto.ProductResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheCatalog, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product catalog to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	if err := s.storage.Delete(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to remove product image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if id != constant.Empty {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetProduct, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete product from cache")
		}
	}

	if err := s.cache.Delete(ctx, cacheCatalog); err != nil {
		log.Error().Err(err).Msg("failed to delete product catalog from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllProduct)
	shared.InvalidateCaches(ctx, s.cache, cacheCountProduct)
}
