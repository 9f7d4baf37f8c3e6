package service

import (
	"context"
	"time"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// UserService manages dashboard operators
type UserService struct {
	store   *repository.Store
	latency *Latency
}

// NewUserService creates a new user service
func NewUserService(store *repository.Store, latency *Latency) *UserService {
	return &UserService{
		store:   store,
		latency: latency,
	}
}

// List returns every user
func (s *UserService) List(ctx context.Context) (*domain.PaginatedResponse[domain.User], error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	return domain.NewPaginatedResponse(s.store.Users.List()), nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	u, ok := s.store.Users.Get(id)
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

// Current returns the signed-in user
func (s *UserService) Current(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		if err := s.latency.Wait(ctx, WeightRead); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	return s.Get(ctx, userID)
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(ctx context.Context, id string, req *domain.UpdateRoleRequest) (*domain.User, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	u, err := s.store.Users.Update(id, func(u *domain.User) error {
		u.Role = req.Role
		u.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
