package service

import (
	"context"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// DashboardService aggregates the headline dashboard numbers
type DashboardService struct {
	store   *repository.Store
	latency *Latency
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *repository.Store, latency *Latency) *DashboardService {
	return &DashboardService{
		store:   store,
		latency: latency,
	}
}

// KPIs returns live catalog and conversation totals combined with the
// accuracy and search snapshot
func (s *DashboardService) KPIs(ctx context.Context) (*domain.DashboardKPIs, error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}

	kpis := s.store.KPIs()
	kpis.TotalProducts = s.store.Products.Len()
	kpis.TotalConversations = s.store.Conversations.Len()
	return &kpis, nil
}
