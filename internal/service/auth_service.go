package service

import (
	"context"
	"strings"
	"time"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
	"go.uber.org/zap"
)

// AuthService signs dashboard users in
type AuthService struct {
	store          *repository.Store
	issuer         TokenIssuer
	sharedPassword string
	latency        *Latency
	logger         *zap.Logger
}

// NewAuthService creates a new auth service. Every known user signs in with
// the shared password.
func NewAuthService(
	store *repository.Store,
	issuer TokenIssuer,
	sharedPassword string,
	latency *Latency,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		store:          store,
		issuer:         issuer,
		sharedPassword: sharedPassword,
		latency:        latency,
		logger:         logger,
	}
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := s.latency.Wait(ctx, WeightHeavy); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	users := s.store.Users.Filter(func(u *domain.User) bool {
		return strings.EqualFold(u.Email, req.Email)
	})
	if len(users) == 0 || req.Password != s.sharedPassword {
		s.logger.Info("Login rejected", zap.String("email", req.Email))
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.Users.Update(users[0].ID, func(u *domain.User) error {
		now := time.Now()
		u.LastLoginAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{User: &user, Token: token}, nil
}

// Authenticate resolves a token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.issuer.Subject(token)
	if err != nil {
		return nil, err
	}
	u, ok := s.store.Users.Get(id)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &u, nil
}

// Logout ends a session. Tokens are stateless so there is nothing to revoke.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.latency.Wait(ctx, WeightRead)
}
