package jwt_test

import (
	"context"
	"testing"
	"time"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/identity"
	"github.com/fabyoh/storefront/internal/identity/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T, duration time.Duration) *jwt.Codec {
	t.Helper()
	return jwt.NewCodec(jwt.Config{
		Secret:        "test-secret-key",
		TokenDuration: duration,
	})
}

func TestIssueAndVerifyToken(t *testing.T) {
	codec := newCodec(t, time.Hour)

	user := &domain.User{
		ID:    "8d4d93ec-7a54-4d2f-9f7e-6c27e93f3b11",
		Email: "alice@example.com",
		Role:  domain.RoleAdmin,
	}

	token, err := codec.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := codec.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := newCodec(t, -time.Minute)

	token, err := codec.IssueToken(&domain.User{
		ID:    "u1",
		Email: "bob@example.com",
		Role:  domain.RoleUser,
	})
	require.NoError(t, err)

	_, err = codec.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyTamperedToken(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.IssueToken(&domain.User{
		ID:    "u1",
		Email: "bob@example.com",
		Role:  domain.RoleUser,
	})
	require.NoError(t, err)

	_, err = codec.VerifyToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newCodec(t, time.Hour)
	other := jwt.NewCodec(jwt.Config{Secret: "other-secret", TokenDuration: time.Hour})

	token, err := other.IssueToken(&domain.User{
		ID:    "u1",
		Email: "bob@example.com",
		Role:  domain.RoleUser,
	})
	require.NoError(t, err)

	_, err = codec.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	codec := newCodec(t, time.Hour)

	_, err := codec.VerifyToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}
