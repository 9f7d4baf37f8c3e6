package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

var orderRoots = []string{RootOrders}

func (h *Handler) ListOrders(c *gin.Context) {
	var filters domain.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootOrders, filters),
		func(ctx context.Context) (*domain.PaginatedResponse[domain.Order], error) {
			return h.svc.Orders.List(ctx, filters)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootOrders, id),
		func(ctx context.Context) (*domain.Order, error) {
			return h.svc.Orders.Get(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var req domain.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	order, err := query.MutateValue(c.Request.Context(), h.queries, orderRoots,
		func(ctx context.Context) (*domain.Order, error) {
			return h.svc.Orders.UpdateStatus(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id := c.Param("id")
	var req domain.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	order, err := query.MutateValue(c.Request.Context(), h.queries, orderRoots,
		func(ctx context.Context) (*domain.Order, error) {
			return h.svc.Orders.UpdatePaymentStatus(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
