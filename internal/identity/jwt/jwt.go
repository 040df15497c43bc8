// Package jwt issues and verifies the HS256 access tokens the service
// authenticates with.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/identity"
)

// Config contains token signing settings.
type Config struct {
	Secret        string
	TokenDuration time.Duration
}

// Claims is the token payload. Role travels inside the token and is
// trusted on verification without a store lookup.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens.
type Codec struct {
	secret        []byte
	tokenDuration time.Duration
}

// NewCodec creates a token codec.
func NewCodec(cfg Config) *Codec {
	return &Codec{
		secret:        []byte(cfg.Secret),
		tokenDuration: cfg.TokenDuration,
	}
}

// IssueToken creates a signed token for the given user.
func (c *Codec) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the identity it asserts.
func (c *Codec) VerifyToken(_ context.Context, tokenString string) (*domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, identity.ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return nil, identity.ErrInvalidToken
	}

	return &domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
