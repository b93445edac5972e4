package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"farmasaude-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

var _ domain.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	p.InStock = p.Quantity > 0
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) ListInStock(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Owner").
		Where("quantity > 0")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR brand LIKE ?", like, like, like)
	}
	var products []domain.Product
	if err := q.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.Product, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).Where("owner_id = ?", ownerID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []domain.Product
	if err := tx.Order("created_at desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	p.InStock = p.Quantity > 0
	return r.db.WithContext(ctx).Save(p).Error
}

// SetQuantity 直接设置库存并同步 in_stock 标记
func (r *ProductRepo) SetQuantity(ctx context.Context, id string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity": quantity,
			"in_stock": quantity > 0,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
