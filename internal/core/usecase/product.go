package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/pkg/cache"
)

// menuCacheTTL keeps category listings hot between menu-screen refreshes.
// Writes invalidate the affected category, so staleness is bounded by
// concurrent writers only.
const menuCacheTTL = 30 * time.Second

// ProductService manages the menu. Category listings are read-through
// cached when a cache is configured; cache is optional (nil disables it).
type ProductService struct {
	products ports.ProductRepository
	cache    cache.Cache
}

func NewProductService(products ports.ProductRepository, c cache.Cache) *ProductService {
	return &ProductService{products: products, cache: c}
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(uuid.NewString(), input.Name, input.Description, category, input.Price, input.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateCategory(ctx, category)
	return productToDTO(product), nil
}

func (s *ProductService) ListByCategory(ctx context.Context, rawCategory string) ([]*ProductDTO, error) {
	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	if dtos, ok := s.cachedCategory(ctx, category); ok {
		return dtos, nil
	}

	products, err := s.products.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	dtos := make([]*ProductDTO, len(products))
	for i, product := range products {
		dtos[i] = productToDTO(product)
	}

	s.storeCategory(ctx, category, dtos)
	return dtos, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*ProductDTO, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToDTO(product), nil
}

func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*ProductDTO, error) {
	patch := ports.ProductPatch{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if input.Category != nil {
		category, err := domain.ParseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &category
	}
	if patch.Empty() {
		return nil, domain.NewBusinessRuleError("update payload must not be empty")
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domain.NewValidationError("price", "must not be negative")
	}

	previous, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	// Both the old and the new category listings are now stale.
	s.invalidateCategory(ctx, previous.Category)
	s.invalidateCategory(ctx, product.Category)
	return productToDTO(product), nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCategory(ctx, product.Category)
	return nil
}

func (s *ProductService) cachedCategory(ctx context.Context, category domain.Category) ([]*ProductDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := s.cache.GenerateKey("products_by_category", string(category))
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var dtos []*ProductDTO
	if err := json.Unmarshal([]byte(raw), &dtos); err != nil {
		return nil, false
	}
	return dtos, true
}

func (s *ProductService) storeCategory(ctx context.Context, category domain.Category, dtos []*ProductDTO) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	key := s.cache.GenerateKey("products_by_category", string(category))
	if err := s.cache.Set(ctx, key, string(data), menuCacheTTL); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (s *ProductService) invalidateCategory(ctx context.Context, category domain.Category) {
	if s.cache == nil {
		return
	}
	key := s.cache.GenerateKey("products_by_category", string(category))
	if err := s.cache.Del(ctx, key); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "key", key, "error", err)
	}
}
