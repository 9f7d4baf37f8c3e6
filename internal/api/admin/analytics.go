package admin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

func (h *Handler) GetKPIs(c *gin.Context) {
	kpis, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootDashboardKPIs, nil),
		h.svc.Dashboard.KPIs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, kpis)
}

// StreamKPIs pushes the dashboard KPIs as server-sent events whenever the
// cached value changes, e.g. after a product or conversation mutation.
func (h *Handler) StreamKPIs(c *gin.Context) {
	obs := h.queries.Watch(query.NewKey(RootDashboardKPIs, nil), func(ctx context.Context) (any, error) {
		return h.svc.Dashboard.KPIs(ctx)
	})
	defer obs.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// The stream outlives the server's WriteTimeout
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case state, ok := <-obs.Updates():
			if !ok {
				return false
			}
			c.SSEvent("kpis", stateEvent(state))
			return true
		}
	})
}

func stateEvent(s query.State) gin.H {
	event := gin.H{
		"status":     s.Status,
		"data":       s.Data,
		"stale":      s.Stale,
		"isFetching": s.IsFetching,
	}
	if !s.UpdatedAt.IsZero() {
		event["updatedAt"] = s.UpdatedAt
	}
	if s.Err != nil {
		event["error"] = s.Err.Error()
	}
	return event
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	var r domain.AnalyticsRange
	if err := c.ShouldBindQuery(&r); err != nil {
		response.BadRequest(c, err)
		return
	}

	data, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootAnalytics, r),
		func(ctx context.Context) (*domain.AnalyticsData, error) {
			return h.svc.Analytics.Get(ctx, r)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *Handler) ExportAnalytics(c *gin.Context) {
	format := c.DefaultQuery("format", domain.ExportFormatCSV)

	key := query.NewKey(RootAnalytics, map[string]string{"export": format})
	report, err := query.Get(c.Request.Context(), h.queries, key,
		func(ctx context.Context) (*domain.Report, error) {
			return h.svc.Analytics.Export(ctx, format)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
