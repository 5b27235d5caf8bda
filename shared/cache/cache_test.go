package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"nutrisur/shared/cache"
	"nutrisur/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRemember(t *testing.T) {
	t.Run("hit skips the loader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().
			Get(gomock.Any(), "product:get:p1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*(dest.(*product)) = product{ID: "p1", Name: "Green bowl"}

				return nil
			})

		res, err := cache.Remember(context.Background(), redisCache, "product:get:p1", 60, func(context.Context) (product, error) {
			t.Fatal("loader must not run on a hit")

			return product{}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, "Green bowl", res.Name)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		var wg sync.WaitGroup
		wg.Add(1)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		redisCache.EXPECT().
			Save(gomock.Any(), "product:get:p2", product{ID: "p2"}, 60).
			DoAndReturn(func(context.Context, string, any, int) error {
				defer wg.Done()

				return errors.New("redis down")
			})

		res, err := cache.Remember(context.Background(), redisCache, "product:get:p2", 60, func(context.Context) (product, error) {
			return product{ID: "p2"}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, "p2", res.ID)

		wg.Wait()
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		_, err := cache.Remember(context.Background(), redisCache, "product:get:p3", 60, func(context.Context) (product, error) {
			return product{}, errors.New("db down")
		})

		assert.EqualError(t, err, "db down")
	})
}
