package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/middleware"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootUsers, nil),
		h.svc.Users.List)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	h.respondUser(c, c.Param("id"))
}

// CurrentUser returns the user the session token belongs to
func (h *Handler) CurrentUser(c *gin.Context) {
	id := middleware.UserID(c)
	user, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootUsers, id),
		func(ctx context.Context) (*domain.User, error) {
			return h.svc.Users.Current(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) respondUser(c *gin.Context, id string) {
	user, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootUsers, id),
		func(ctx context.Context) (*domain.User, error) {
			return h.svc.Users.Get(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	id := c.Param("id")
	var req domain.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	user, err := query.MutateValue(c.Request.Context(), h.queries, []string{RootUsers},
		func(ctx context.Context) (*domain.User, error) {
			return h.svc.Users.UpdateRole(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
