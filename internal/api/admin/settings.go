package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootSettings, nil),
		h.svc.Settings.Get)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req domain.UpdateAISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	settings, err := query.MutateValue(c.Request.Context(), h.queries, []string{RootSettings},
		func(ctx context.Context) (*domain.AISettings, error) {
			return h.svc.Settings.Update(ctx, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// PreviewPrompt renders the saved template without changing anything
func (h *Handler) PreviewPrompt(c *gin.Context) {
	var req domain.PromptPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	preview, err := h.svc.Settings.PreviewPrompt(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
