package domain

import (
	"strings"
	"time"
)

// Availability is the stock state of a product or variant
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a variant is low_stock
const LowStockThreshold = 5

// AvailabilityForStock derives an availability from a stock count
func AvailabilityForStock(stock int) Availability {
	switch {
	case stock <= 0:
		return AvailabilityOutOfStock
	case stock <= LowStockThreshold:
		return AvailabilityLowStock
	default:
		return AvailabilityInStock
	}
}

// Product represents a catalog item with purchasable variants
type Product struct {
	ID             string            `json:"id"`
	Brand          string            `json:"brand"`
	Model          string            `json:"model"`
	BasePrice      float64           `json:"basePrice"`
	Description    string            `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Images         []string          `json:"images"`
	Variants       []ProductVariant  `json:"variants"`
	RAGIndexed     bool              `json:"ragIndexed"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ProductVariant is one SKU of a product
type ProductVariant struct {
	ID           string            `json:"id"`
	SKU          string            `json:"sku" validate:"required"`
	Attributes   map[string]string `json:"attributes"`
	Price        float64           `json:"price" validate:"gte=0"`
	Stock        int               `json:"stock" validate:"gte=0"`
	Availability Availability      `json:"availability" validate:"omitempty,oneof=in_stock low_stock out_of_stock"`
}

// Availability returns the best availability across variants
func (p *Product) Availability() Availability {
	best := AvailabilityOutOfStock
	for _, v := range p.Variants {
		switch v.Availability {
		case AvailabilityInStock:
			return AvailabilityInStock
		case AvailabilityLowStock:
			best = AvailabilityLowStock
		}
	}
	return best
}

// TotalStock sums the stock of all variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// PriceRange returns the lowest and highest variant price.
// A product without variants reports its base price for both.
func (p *Product) PriceRange() (float64, float64) {
	if len(p.Variants) == 0 {
		return p.BasePrice, p.BasePrice
	}
	lo, hi := p.Variants[0].Price, p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < lo {
			lo = v.Price
		}
		if v.Price > hi {
			hi = v.Price
		}
	}
	return lo, hi
}

// Clone returns a deep copy
func (p Product) Clone() Product {
	p.Specifications = cloneStringMap(p.Specifications)
	p.Images = append([]string(nil), p.Images...)
	if p.Variants != nil {
		variants := make([]ProductVariant, len(p.Variants))
		for i, v := range p.Variants {
			v.Attributes = cloneStringMap(v.Attributes)
			variants[i] = v
		}
		p.Variants = variants
	}
	return p
}

// ProductFilters narrows a product listing. All set filters must match.
type ProductFilters struct {
	Brand        string   `form:"brand"`
	Availability string   `form:"availability"`
	Search       string   `form:"search"`
	MinPrice     *float64 `form:"minPrice"`
	MaxPrice     *float64 `form:"maxPrice"`
}

// Match reports whether a product satisfies every filter
func (f ProductFilters) Match(p *Product) bool {
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Availability != "" && string(p.Availability()) != f.Availability {
		return false
	}
	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Brand), search) &&
			!strings.Contains(strings.ToLower(p.Model), search) {
			return false
		}
	}
	if f.MinPrice != nil && p.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice > *f.MaxPrice {
		return false
	}
	return true
}

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Brand          string            `json:"brand" binding:"required" validate:"required"`
	Model          string            `json:"model" binding:"required" validate:"required"`
	BasePrice      float64           `json:"basePrice" validate:"gte=0"`
	Description    string            `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Images         []string          `json:"images,omitempty" validate:"dive,url"`
	Variants       []ProductVariant  `json:"variants,omitempty" validate:"dive"`
	RAGIndexed     bool              `json:"ragIndexed"`
}

// UpdateProductRequest is a partial product update. Nil fields are left unchanged;
// maps and slices replace the stored value wholesale.
type UpdateProductRequest struct {
	Brand          *string           `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model          *string           `json:"model,omitempty" validate:"omitempty,min=1"`
	BasePrice      *float64          `json:"basePrice,omitempty" validate:"omitempty,gte=0"`
	Description    *string           `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Images         []string          `json:"images,omitempty" validate:"omitempty,dive,url"`
	Variants       []ProductVariant  `json:"variants,omitempty" validate:"omitempty,dive"`
	RAGIndexed     *bool             `json:"ragIndexed,omitempty"`
}

// Apply merges the request into p
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Brand != nil {
		p.Brand = *r.Brand
	}
	if r.Model != nil {
		p.Model = *r.Model
	}
	if r.BasePrice != nil {
		p.BasePrice = *r.BasePrice
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Specifications != nil {
		p.Specifications = cloneStringMap(r.Specifications)
	}
	if r.Images != nil {
		p.Images = append([]string{}, r.Images...)
	}
	if r.Variants != nil {
		p.Variants = (&Product{Variants: r.Variants}).Clone().Variants
	}
	if r.RAGIndexed != nil {
		p.RAGIndexed = *r.RAGIndexed
	}
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
