package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"nutrisur/config"
	"nutrisur/infras/otel/mocks"
	s3Mocks "nutrisur/infras/s3/mocks"
	productMocks "nutrisur/internal/domains/product/mocks"
	"nutrisur/internal/domains/product/model"
	"nutrisur/internal/domains/product/model/dto"
	"nutrisur/internal/domains/product/service"
	cacheMocks "nutrisur/shared/cache/mocks"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo    *productMocks.MockProduct
	cache   *cacheMocks.MockRedisCache
	storage *s3Mocks.MockStorage
	svc     service.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    productMocks.NewMockProduct(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		storage: s3Mocks.NewMockStorage(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.storage)

	return f
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestProductService_Create(t *testing.T) {
	image := &multipart.FileHeader{Filename: "salad.png"}

	t.Run("without image", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, product model.Product) error {
				assert.Equal(t, "Green bowl", product.Name)
				assert.InDelta(t, 7.5, product.Price, 0.001)
				assert.Empty(t, product.Image)
				assert.True(t, product.Active)
				assert.Equal(t, "admin-1", product.CreatedBy)

				return nil
			})

		err := f.svc.Create(adminCtx(), dto.CreateProductRequest{Name: "Green bowl", Price: 7.5})

		require.NoError(t, err)
	})

	t.Run("with image", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().
			Upload(gomock.Any(), model.EntityName, gomock.Any(), image).
			Return("https://cdn.nutrisur.cl/product/x.png", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, product model.Product) error {
				assert.Equal(t, "https://cdn.nutrisur.cl/product/x.png", product.Image)

				return nil
			})

		err := f.svc.Create(adminCtx(), dto.CreateProductRequest{Name: "Green bowl", Price: 7.5, Image: image})

		require.NoError(t, err)
	})

	t.Run("insert failure removes uploaded image", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.nutrisur.cl/product/x.png", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.storage.EXPECT().Delete(gomock.Any(), "https://cdn.nutrisur.cl/product/x.png").Return(nil)

		err := f.svc.Create(adminCtx(), dto.CreateProductRequest{Name: "Green bowl", Price: 7.5, Image: image})

		require.Error(t, err)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket gone"))

		err := f.svc.Create(adminCtx(), dto.CreateProductRequest{Name: "Green bowl", Price: 7.5, Image: image})

		require.Error(t, err)
	})
}

func TestProductService_Get(t *testing.T) {
	t.Run("cache miss loads from repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "product:get:p1", gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{ID: "p1", Name: "Green bowl", Price: 7.5}, nil)

		res, err := f.svc.Get(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, "Green bowl", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)

		_, err := f.svc.Get(context.Background(), "p1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestProductService_Update(t *testing.T) {
	current := model.Product{ID: "p1", Name: "Green bowl", Image: "https://cdn.nutrisur.cl/product/old.png"}

	t.Run("new image replaces the old one", func(t *testing.T) {
		f := newFixture(t)
		price := 9.0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.nutrisur.cl/product/new.png", nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.nutrisur.cl/product/new.png", fields[model.FieldImage])
				assert.Equal(t, &price, fields[model.FieldPrice])
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})
		f.storage.EXPECT().Delete(gomock.Any(), current.Image).Return(nil)

		err := f.svc.Update(adminCtx(), dto.UpdateProductRequest{Price: &price, Image: &multipart.FileHeader{Filename: "new.png"}}, "p1")

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateProductRequest{Name: "x"}, "p1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestProductService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{ID: "p1", Image: "https://cdn.nutrisur.cl/product/a.png"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.storage.EXPECT().Delete(gomock.Any(), "https://cdn.nutrisur.cl/product/a.png").Return(errors.New("ignored"))

	require.NoError(t, f.svc.Delete(adminCtx(), "p1"))
}

func TestProductService_Catalog(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "product:catalog", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Product, error) {
			assert.Equal(t, model.FieldName, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "products.active")
			assert.Contains(t, args, model.FieldActive)

			return []model.Product{{ID: "p1", Name: "Avocado toast", Price: 5}, {ID: "p2", Name: "Green bowl", Price: 7.5}}, nil
		})

	res, err := f.svc.Catalog(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Avocado toast", res[0].Name)
}
