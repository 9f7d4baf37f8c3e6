package service

import (
	"context"
	"time"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// OrderService manages customer orders
type OrderService struct {
	store   *repository.Store
	latency *Latency
}

// NewOrderService creates a new order service
func NewOrderService(store *repository.Store, latency *Latency) *OrderService {
	return &OrderService{
		store:   store,
		latency: latency,
	}
}

// List returns the orders matching every set filter
func (s *OrderService) List(ctx context.Context, filters domain.OrderFilters) (*domain.PaginatedResponse[domain.Order], error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	return domain.NewPaginatedResponse(s.store.Orders.Filter(filters.Match)), nil
}

// Get returns a single order
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	o, ok := s.store.Orders.Get(id)
	if !ok {
		return nil, notFound("order", id)
	}
	return &o, nil
}

// UpdateStatus changes the fulfillment status
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *domain.UpdateOrderStatusRequest) (*domain.Order, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.update(id, func(o *domain.Order) {
		o.Status = req.Status
	})
}

// UpdatePaymentStatus changes the payment status
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, req *domain.UpdatePaymentStatusRequest) (*domain.Order, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.update(id, func(o *domain.Order) {
		o.PaymentStatus = req.PaymentStatus
	})
}

func (s *OrderService) update(id string, fn func(*domain.Order)) (*domain.Order, error) {
	o, err := s.store.Orders.Update(id, func(o *domain.Order) error {
		fn(o)
		o.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}
