package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/liliang-cn/ragshop/internal/repository"
)

// ProductService manages the product catalog
type ProductService struct {
	store   *repository.Store
	latency *Latency
}

// NewProductService creates a new product service
func NewProductService(store *repository.Store, latency *Latency) *ProductService {
	return &ProductService{
		store:   store,
		latency: latency,
	}
}

// List returns the products matching every set filter
func (s *ProductService) List(ctx context.Context, filters domain.ProductFilters) (*domain.PaginatedResponse[domain.Product], error) {
	if err := s.latency.Wait(ctx, WeightList); err != nil {
		return nil, err
	}
	return domain.NewPaginatedResponse(s.store.Products.Filter(filters.Match)), nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return nil, err
	}
	p, ok := s.store.Products.Get(id)
	if !ok {
		return nil, notFound("product", id)
	}
	return &p, nil
}

// Create adds a product with a fresh ID and timestamps
func (s *ProductService) Create(ctx context.Context, req *domain.CreateProductRequest) (*domain.Product, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	p := domain.Product{
		ID:             uuid.New().String(),
		Brand:          req.Brand,
		Model:          req.Model,
		BasePrice:      req.BasePrice,
		Description:    req.Description,
		Specifications: req.Specifications,
		Images:         append([]string{}, req.Images...),
		Variants:       (&domain.Product{Variants: req.Variants}).Clone().Variants,
		RAGIndexed:     req.RAGIndexed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Variants == nil {
		p.Variants = []domain.ProductVariant{}
	}
	normalizeVariants(p.Variants)

	if err := s.store.Products.Insert(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update merges req into the stored product
func (s *ProductService) Update(ctx context.Context, id string, req *domain.UpdateProductRequest) (*domain.Product, error) {
	if err := s.latency.Wait(ctx, WeightWrite); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	p, err := s.store.Products.Update(id, func(p *domain.Product) error {
		req.Apply(p)
		normalizeVariants(p.Variants)
		p.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a product. Deleting an unknown ID is not an error.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.latency.Wait(ctx, WeightRead); err != nil {
		return err
	}
	s.store.Products.Delete(id)
	return nil
}

// normalizeVariants fills in variant IDs and availability the caller left empty
func normalizeVariants(variants []domain.ProductVariant) {
	for i := range variants {
		if variants[i].ID == "" {
			variants[i].ID = uuid.New().String()
		}
		if variants[i].Availability == "" {
			variants[i].Availability = domain.AvailabilityForStock(variants[i].Stock)
		}
	}
}
