package service

import (
	"context"
	"testing"
	"time"

	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestAuthService(t *testing.T, issuer TokenIssuer) *AuthService {
	return NewAuthService(newTestStore(t), issuer, "password123", NoLatency(), zaptest.NewLogger(t))
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(t, PlaceholderIssuer{})
	ctx := context.Background()

	resp, err := svc.Login(ctx, &domain.LoginRequest{Email: "Admin@RAGShop.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.User.ID)
	assert.Equal(t, "mock-jwt-token-1", resp.Token)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *resp.User.LastLoginAt, time.Minute)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "admin@ragshop.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "nobody@ragshop.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &domain.LoginRequest{Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Authenticate(t *testing.T) {
	issuers := map[string]TokenIssuer{
		"placeholder": PlaceholderIssuer{},
		"jwt":         NewJWTIssuer("test-secret", time.Hour),
	}

	for name, issuer := range issuers {
		t.Run(name, func(t *testing.T) {
			svc := newTestAuthService(t, issuer)
			ctx := context.Background()

			resp, err := svc.Login(ctx, &domain.LoginRequest{Email: "staff@ragshop.com", Password: "password123"})
			require.NoError(t, err)

			user, err := svc.Authenticate(ctx, resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "2", user.ID)

			_, err = svc.Authenticate(ctx, "garbage")
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestJWTIssuer(t *testing.T) {
	issuer := NewJWTIssuer("secret-a", time.Hour)

	token, err := issuer.Issue("42")
	require.NoError(t, err)

	sub, err := issuer.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTIssuer("secret-b", time.Hour).Subject(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewJWTIssuer("secret-a", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Subject(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestNewTokenIssuer(t *testing.T) {
	assert.IsType(t, PlaceholderIssuer{}, NewTokenIssuer(config.AuthConfig{}))
	assert.IsType(t, &JWTIssuer{}, NewTokenIssuer(config.AuthConfig{JWTSecret: "s"}))
}
