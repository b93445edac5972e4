package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"farmasaude-api/internal/domain"
)

type CatalogService struct {
	products domain.ProductRepository
}

func NewCatalogService(products domain.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListPublic returns the storefront view: in-stock products only.
func (s *CatalogService) ListPublic(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	return s.products.ListInStock(ctx, f)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// SetStock sets quantity-on-hand directly; the in-stock flag is recomputed
// in the same statement. Only the owning seller may touch it.
func (s *CatalogService) SetStock(ctx context.Context, actor Actor, productID string, quantity int) (*domain.Product, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if !CanManageProducts(actor) || p.OwnerID != actor.ID {
		return nil, ErrForbidden
	}
	if err := s.products.SetQuantity(ctx, productID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("set quantity: %w", err)
	}
	p.Quantity = quantity
	p.InStock = quantity > 0
	return p, nil
}

// ValidateProduct guards the writable invariants on create/update.
func ValidateProduct(p *domain.Product) error {
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}
