//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewServiceFromConfig(cfg)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, operatorID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(operatorID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken issues a token that expired a minute ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, operatorID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateTokenWithTTL(operatorID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
