//go:build unit

package jwt

import (
	"testing"
	"time"

	"travel-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	id := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		svc := NewService("secret", time.Hour)

		token, err := svc.GenerateToken(id, user.RoleOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		got, err := claims.OperatorID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
		assert.Equal(t, "operator", claims.Role)
		assert.Equal(t, issuer, claims.Issuer)
	})

	t.Run("expired", func(t *testing.T) {
		svc := NewService("secret", time.Hour)
		token, err := svc.GenerateToken(id, user.RoleAdmin)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("secret", time.Hour).GenerateToken(id, user.RoleOperator)
		require.NoError(t, err)

		_, err = NewService("other", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing secret", func(t *testing.T) {
		svc := NewService("", time.Hour)
		_, err := svc.GenerateToken(id, user.RoleOperator)
		assert.ErrorIs(t, err, ErrNoSecret)
		_, err = svc.ValidateToken("anything")
		assert.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := NewService("secret", time.Hour).GenerateToken(id, user.Role("root"))
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}
