package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/liliang-cn/ragshop/internal/domain"
)

// TokenIssuer creates and resolves session tokens
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Subject returns the user ID a token was issued for
	Subject(token string) (string, error)
}

// NewTokenIssuer returns a JWT issuer when a secret is configured and the
// placeholder issuer otherwise
func NewTokenIssuer(cfg config.AuthConfig) TokenIssuer {
	if cfg.JWTSecret != "" {
		return NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	}
	return PlaceholderIssuer{}
}

const placeholderTokenPrefix = "mock-jwt-token-"

// PlaceholderIssuer issues unsigned mock-jwt-token-<id> tokens
type PlaceholderIssuer struct{}

// Issue returns the placeholder token for a user
func (PlaceholderIssuer) Issue(userID string) (string, error) {
	return placeholderTokenPrefix + userID, nil
}

// Subject extracts the user ID from a placeholder token
func (PlaceholderIssuer) Subject(token string) (string, error) {
	id, ok := strings.CutPrefix(token, placeholderTokenPrefix)
	if !ok || id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

// JWTIssuer issues HS256-signed tokens
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer creates a JWT issuer
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for a user
func (j *JWTIssuer) Issue(userID string) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Subject validates a token and returns its subject
func (j *JWTIssuer) Subject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}
	return sub, nil
}
