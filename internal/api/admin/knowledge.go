package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

var knowledgeRoots = []string{RootKnowledge}

func (h *Handler) ListKnowledge(c *gin.Context) {
	var filters domain.KnowledgeFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootKnowledge, filters),
		func(ctx context.Context) (*domain.PaginatedResponse[domain.KnowledgeEntry], error) {
			return h.svc.Knowledge.List(ctx, filters)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetKnowledge(c *gin.Context) {
	id := c.Param("id")
	entry, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootKnowledge, id),
		func(ctx context.Context) (*domain.KnowledgeEntry, error) {
			return h.svc.Knowledge.Get(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) ListKnowledgeVersions(c *gin.Context) {
	id := c.Param("id")
	key := query.NewKey(RootKnowledge, map[string]string{"id": id, "view": "versions"})
	versions, err := query.Get(c.Request.Context(), h.queries, key,
		func(ctx context.Context) ([]*domain.KnowledgeVersion, error) {
			return h.svc.Knowledge.Versions(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

func (h *Handler) CreateKnowledge(c *gin.Context) {
	var req domain.CreateKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	entry, err := query.MutateValue(c.Request.Context(), h.queries, knowledgeRoots,
		func(ctx context.Context) (*domain.KnowledgeEntry, error) {
			return h.svc.Knowledge.Create(ctx, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) UpdateKnowledge(c *gin.Context) {
	id := c.Param("id")
	var req domain.UpdateKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	entry, err := query.MutateValue(c.Request.Context(), h.queries, knowledgeRoots,
		func(ctx context.Context) (*domain.KnowledgeEntry, error) {
			return h.svc.Knowledge.Update(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeleteKnowledge(c *gin.Context) {
	id := c.Param("id")
	err := h.queries.Mutate(c.Request.Context(), knowledgeRoots, func(ctx context.Context) error {
		return h.svc.Knowledge.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "knowledge entry deleted"})
}

func (h *Handler) ReindexKnowledge(c *gin.Context) {
	result, err := query.MutateValue(c.Request.Context(), h.queries, knowledgeRoots,
		func(ctx context.Context) (*domain.ReindexResult, error) {
			return h.svc.Knowledge.Reindex(ctx)
		})
	if err != nil {
		// An abandoned run has already marked and restored entries
		h.queries.Invalidate(RootKnowledge)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
