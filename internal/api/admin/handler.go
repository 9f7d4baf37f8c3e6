package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/query"
	"github.com/liliang-cn/ragshop/internal/service"
)

// Query roots, one per collection. Mutations invalidate by root.
const (
	RootProducts      = "products"
	RootKnowledge     = "knowledge"
	RootConversations = "conversations"
	RootUsers         = "users"
	RootSettings      = "ai-settings"
	RootDashboardKPIs = "dashboard-kpis"
	RootAnalytics     = "analytics"
	RootOrders        = "orders"
)

// KPIs are derived from the product and conversation collections
var (
	productRoots      = []string{RootProducts, RootDashboardKPIs}
	conversationRoots = []string{RootConversations, RootDashboardKPIs}
)

// Handler handles admin dashboard API requests
type Handler struct {
	svc     *service.Services
	queries *query.Client
}

// NewHandler creates a new admin handler
func NewHandler(svc *service.Services, queries *query.Client) *Handler {
	return &Handler{
		svc:     svc,
		queries: queries,
	}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	knowledge := r.Group("/knowledge")
	{
		knowledge.GET("", h.ListKnowledge)
		knowledge.POST("", h.CreateKnowledge)
		knowledge.POST("/reindex", h.ReindexKnowledge)
		knowledge.GET("/:id", h.GetKnowledge)
		knowledge.PUT("/:id", h.UpdateKnowledge)
		knowledge.DELETE("/:id", h.DeleteKnowledge)
		knowledge.GET("/:id/versions", h.ListKnowledgeVersions)
	}

	conversations := r.Group("/conversations")
	{
		conversations.GET("", h.ListConversations)
		conversations.GET("/:id", h.GetConversation)
		conversations.POST("/:id/feedback", h.AddFeedback)
	}

	settings := r.Group("/ai-settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
		settings.POST("/preview", h.PreviewPrompt)
	}

	r.GET("/dashboard/kpis", h.GetKPIs)
	r.GET("/dashboard/kpis/stream", h.StreamKPIs)
	r.GET("/analytics", h.GetAnalytics)
	r.GET("/analytics/export", h.ExportAnalytics)

	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id/role", h.UpdateUserRole)
	}
	r.GET("/auth/me", h.CurrentUser)

	orders := r.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
		orders.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
	}
}
