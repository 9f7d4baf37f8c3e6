package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/ragshop/internal/api/response"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/query"
)

// productView adds the figures the catalogue table shows next to each product
type productView struct {
	domain.Product
	Availability domain.Availability `json:"availability"`
	TotalStock   int                 `json:"totalStock"`
	MinPrice     float64             `json:"minPrice"`
	MaxPrice     float64             `json:"maxPrice"`
}

func newProductView(p *domain.Product) productView {
	lo, hi := p.PriceRange()
	return productView{
		Product:      *p,
		Availability: p.Availability(),
		TotalStock:   p.TotalStock(),
		MinPrice:     lo,
		MaxPrice:     hi,
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	var filters domain.ProductFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootProducts, filters),
		func(ctx context.Context) (*domain.PaginatedResponse[domain.Product], error) {
			return h.svc.Products.List(ctx, filters)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]productView, len(result.Data))
	for i := range result.Data {
		views[i] = newProductView(&result.Data[i])
	}
	c.JSON(http.StatusOK, domain.PaginatedResponse[productView]{
		Data:       views,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := query.Get(c.Request.Context(), h.queries, query.NewKey(RootProducts, id),
		func(ctx context.Context) (*domain.Product, error) {
			return h.svc.Products.Get(ctx, id)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newProductView(product))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	product, err := query.MutateValue(c.Request.Context(), h.queries, productRoots,
		func(ctx context.Context) (*domain.Product, error) {
			return h.svc.Products.Create(ctx, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, newProductView(product))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	product, err := query.MutateValue(c.Request.Context(), h.queries, productRoots,
		func(ctx context.Context) (*domain.Product, error) {
			return h.svc.Products.Update(ctx, id, &req)
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newProductView(product))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	err := h.queries.Mutate(c.Request.Context(), productRoots, func(ctx context.Context) error {
		return h.svc.Products.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
