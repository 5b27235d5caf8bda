package password_test

import (
	"strings"
	"testing"

	"nutrisur/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost

	m.Run()
}

func TestHash(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hashed, err := password.Hash("nutri-secret-1")

		require.NoError(t, err)
		assert.NotEqual(t, "nutri-secret-1", hashed)
		assert.NoError(t, password.Verify("nutri-secret-1", hashed))
	})

	t.Run("salted", func(t *testing.T) {
		first, err := password.Hash("same")
		require.NoError(t, err)

		second, err := password.Hash("same")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := password.Hash("")

		assert.ErrorIs(t, err, password.ErrEmpty)
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("a", 73))

		assert.ErrorIs(t, err, password.ErrTooLong)
	})
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantIs   error
	}{
		{"wrong password", "battery staple", hashed, password.ErrInvalidPassword},
		{"empty password", "", hashed, password.ErrInvalidPassword},
		{"empty hash", "correct horse", "", password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Verify(tt.password, tt.hash), tt.wantIs)
		})
	}

	t.Run("corrupt hash", func(t *testing.T) {
		err := password.Verify("correct horse", "not-a-bcrypt-hash")

		require.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}
