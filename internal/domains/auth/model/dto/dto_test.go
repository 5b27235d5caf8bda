package dto_test

import (
	"testing"

	"nutrisur/infras/jwt"
	"nutrisur/internal/domains/auth/model/dto"
	"nutrisur/shared"
	"nutrisur/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestTokens_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}

	var login dto.LoginResponse
	login.FromTokenPair(pair)

	var refresh dto.RefreshTokenResponse
	refresh.FromTokenPair(pair)

	assert.Equal(t, login.Tokens, refresh.Tokens)
	assert.Equal(t, int64(900), refresh.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	name := "Ana Torres"
	req := dto.RegisterRequest{Email: "Ana@Example.com", FullName: &name}

	user := req.ToUserModel(constant.ContextGuest, "hash")

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.True(t, user.Active)
	assert.False(t, user.IsVerified)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	assert.NotEmpty(t, user.ID)
}

func TestPasswordChange_Fields(t *testing.T) {
	fields := shared.TransformFields(dto.PasswordChange{Password: "hash"}, "user-1")

	assert.Equal(t, "hash", fields["password"])
	assert.Equal(t, "user-1", fields["modified_by"])
}
