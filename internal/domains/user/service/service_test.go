package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"nutrisur/config"
	"nutrisur/infras/otel/mocks"
	userMocks "nutrisur/internal/domains/user/mocks"
	"nutrisur/internal/domains/user/model"
	"nutrisur/internal/domains/user/model/dto"
	"nutrisur/internal/domains/user/service"
	"nutrisur/shared/cache"
	cacheMocks "nutrisur/shared/cache/mocks"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	"nutrisur/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel())

	return f
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{Email: "staff@nutrisur.cl", Password: "password123", Level: constant.RoleAdmin}

	t.Run("stores the hashed password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, constant.RoleAdmin, user.Level)
				assert.NotEqual(t, "password123", user.Password)

				return nil
			})

		require.NoError(t, f.svc.Create(context.Background(), req))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), "user:get:user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*(dest.(*dto.UserResponse)) = dto.UserResponse{ID: "user-1", Email: "ana@example.com"}

				return nil
			})

		res, err := f.svc.Get(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", res.Email)
	})

	t.Run("loaded from the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1", Phone: strPtr("+56911112222")}, nil)

		res, err := f.svc.Get(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, "+56911112222", *res.Phone)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("only profile fields are written", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, strPtr("+56922223333"), fields[model.FieldPhone])
				assert.NotContains(t, fields, model.FieldLevel)
				assert.NotContains(t, fields, model.FieldActive)
				assert.Equal(t, "user-1", filter.Filters[0].(gDto.Filter).Value)

				return nil
			})

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Phone: strPtr("+56922223333")}, "user-1")

		require.NoError(t, err)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{}, "user-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("fk violation"))

		err := f.svc.Delete(context.Background(), "user-1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
