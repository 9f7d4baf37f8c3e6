package service

import (
	"context"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// SettingsService manages the assistant's AI settings
type SettingsService struct {
	store   *repository.Store
	latency *Latency
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *repository.Store, latency *Latency) *SettingsService {
	return &SettingsService{
		store:   store,
		latency: latency,
	}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (*domain.AISettings, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	settings := s.store.Settings()
	return &settings, nil
}

// Update merges req into the settings. Invalid results leave the settings untouched.
func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateAISettingsRequest) (*domain.AISettings, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}

	settings, err := s.store.UpdateSettings(func(settings *domain.AISettings) error {
		req.Apply(settings)
		return validateStruct(settings)
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// PreviewPrompt renders the current template with sample input
func (s *SettingsService) PreviewPrompt(ctx context.Context, req *domain.PromptPreviewRequest) (*domain.PromptPreview, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	settings := s.store.Settings()
	return &domain.PromptPreview{Prompt: settings.RenderPrompt(req.Context, req.Question)}, nil
}
