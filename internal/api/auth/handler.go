package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
	"github.com/liliang-cn/ragshop/internal/service"
)

// Login updates lastLoginAt, so cached user reads go stale
const rootUsers = "users"

// Handler handles dashboard sign-in
type Handler struct {
	authService *service.AuthService
	queries     *query.Client
}

// NewHandler creates a new auth handler
func NewHandler(authService *service.AuthService, queries *query.Client) *Handler {
	return &Handler{
		authService: authService,
		queries:     queries,
	}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// Login exchanges credentials for a session token
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	resp, err := query.MutateValue(c.Request.Context(), h.queries, []string{rootUsers},
		func(ctx context.Context) (*domain.LoginResponse, error) {
			return h.authService.Login(ctx, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout ends the session
func (h *Handler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
