package jwt_test

import (
	"context"
	"testing"

	"nutrisur/config"
	"nutrisur/infras/jwt"
	"nutrisur/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(issuer string) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = issuer
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	svc := newService("nutrisur")
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "user")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, claims.ID, claims.TokenID)
	assert.Equal(t, "user-1", claims.Subject)

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		_, err := newService("someone-else").ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.TokenType("id"))
		assert.Error(t, err)
	})
}

func TestJWT_RefreshTokens(t *testing.T) {
	svc := newService("nutrisur")
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "ana@example.com", "admin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc.def", want: "abc.def"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
