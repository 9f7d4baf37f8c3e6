package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

func (h *Handler) ListConversations(c *gin.Context) {
	var filters domain.ConversationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootConversations, filters),
		func(ctx context.Context) (*domain.PaginatedResponse[domain.Conversation], error) {
			return h.svc.Conversations.List(ctx, filters)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetConversation(c *gin.Context) {
	id := c.Param("id")
	conversation, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootConversations, id),
		func(ctx context.Context) (*domain.Conversation, error) {
			return h.svc.Conversations.Get(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

func (h *Handler) AddFeedback(c *gin.Context) {
	id := c.Param("id")
	var req domain.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	conversation, err := query.MutateValue(c.Request.Context(), h.queries, conversationRoots,
		func(ctx context.Context) (*domain.Conversation, error) {
			return h.svc.Conversations.AddFeedback(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}
