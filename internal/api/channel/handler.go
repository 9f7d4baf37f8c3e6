package channel

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
	"github.com/liliang-cn/ragshop/internal/service"
)

// New conversations change the dashboard conversation total
var conversationRoots = []string{"conversations", "dashboard-kpis"}

// Handler accepts conversation traffic from the web, WhatsApp and Telegram bots
type Handler struct {
	conversationService *service.ConversationService
	queries             *query.Client
}

// NewHandler creates a new channel handler
func NewHandler(conversationService *service.ConversationService, queries *query.Client) *Handler {
	return &Handler{
		conversationService: conversationService,
		queries:             queries,
	}
}

// RegisterRoutes registers channel ingest routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/conversations", h.CreateConversation)
	r.POST("/conversations/:id/messages", h.AppendMessage)
}

// CreateConversation opens a conversation
func (h *Handler) CreateConversation(c *gin.Context) {
	var req domain.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	conversation, err := query.MutateValue(c.Request.Context(), h.queries, conversationRoots,
		func(ctx context.Context) (*domain.Conversation, error) {
			return h.conversationService.Create(ctx, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

// AppendMessage adds a message to a conversation
func (h *Handler) AppendMessage(c *gin.Context) {
	id := c.Param("id")
	var req domain.AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	msg, err := query.MutateValue(c.Request.Context(), h.queries, conversationRoots,
		func(ctx context.Context) (*domain.ConversationMessage, error) {
			return h.conversationService.AppendMessage(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
