package service

import (
	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/liliang-cn/ragshop/internal/repository"
	"go.uber.org/zap"
)

// Services bundles every service the HTTP layer uses
type Services struct {
	Products      *ProductService
	Knowledge     *KnowledgeService
	Conversations *ConversationService
	Settings      *SettingsService
	Dashboard     *DashboardService
	Analytics     *AnalyticsService
	Users         *UserService
	Auth          *AuthService
	Orders        *OrderService
}

// New wires all services over one store
func New(
	cfg *config.Config,
	store *repository.Store,
	versions *repository.KnowledgeVersionRepository,
	logger *zap.Logger,
) *Services {
	latency := NewLatency(cfg.Latency)

	return &Services{
		Products:      NewProductService(store, latency),
		Knowledge:     NewKnowledgeService(store, versions, NewChunker(cfg.RAG), latency, logger.Named("knowledge")),
		Conversations: NewConversationService(store, latency),
		Settings:      NewSettingsService(store, latency),
		Dashboard:     NewDashboardService(store, latency),
		Analytics:     NewAnalyticsService(store, latency),
		Users:         NewUserService(store, latency),
		Auth:          NewAuthService(store, NewTokenIssuer(cfg.Auth), cfg.Auth.SharedPassword, latency, logger.Named("auth")),
		Orders:        NewOrderService(store, latency),
	}
}
