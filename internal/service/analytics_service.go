package service

import (
	"context"
	"fmt"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// AnalyticsService serves and exports assistant analytics
type AnalyticsService struct {
	store   *repository.Store
	latency *Latency
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store *repository.Store, latency *Latency) *AnalyticsService {
	return &AnalyticsService{
		store:   store,
		latency: latency,
	}
}

// Get returns the analytics snapshot with daily stats limited to the range
func (s *AnalyticsService) Get(ctx context.Context, r domain.AnalyticsRange) (*domain.AnalyticsData, error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	if err := validateStruct(r); err != nil {
		return nil, err
	}

	data := s.store.Analytics()
	if r.StartDate != "" || r.EndDate != "" {
		daily := make([]domain.DailyStats, 0, len(data.DailyStats))
		for _, d := range data.DailyStats {
			// YYYY-MM-DD compares correctly as a string
			if r.StartDate != "" && d.Date < r.StartDate {
				continue
			}
			if r.EndDate != "" && d.Date > r.EndDate {
				continue
			}
			daily = append(daily, d)
		}
		data.DailyStats = daily
	}
	return &data, nil
}

// Export renders the analytics snapshot as a downloadable report
func (s *AnalyticsService) Export(ctx context.Context, format string) (*domain.Report, error) {
	if err := s.latency.Wait(ctx, WeightExport); err != nil {
		return nil, err
	}

	data := s.store.Analytics()
	switch format {
	case domain.ExportFormatCSV:
		return exportCSV(&data)
	case domain.ExportFormatXLSX:
		return exportXLSX(&data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}
