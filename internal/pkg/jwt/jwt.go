package jwt

import (
	"errors"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "travel-booking"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrNoSecret     = errors.New("jwt secret is not configured")
)

// Claims identify an operator. The subject is the operator id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) OperatorID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// NewServiceFromConfig parses JWT_DURATION, falling back to 12h when unset or invalid.
func NewServiceFromConfig(cfg config.JWTConfig) *Service {
	d, err := time.ParseDuration(cfg.Duration)
	if err != nil || d <= 0 {
		d = 12 * time.Hour
	}
	return NewService(cfg.Secret, d)
}

func (s *Service) GenerateToken(operatorID uuid.UUID, role user.Role) (string, error) {
	return s.GenerateTokenWithTTL(operatorID, role, s.tokenDuration)
}

func (s *Service) GenerateTokenWithTTL(operatorID uuid.UUID, role user.Role, ttl time.Duration) (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrNoSecret
	}
	if !role.IsValid() {
		return "", user.ErrInvalidRole
	}
	now := s.now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operatorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
