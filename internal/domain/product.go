package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name" binding:"required,max=128"`
	Description string          `gorm:"size:1024" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Category    string          `gorm:"size:64;index" json:"category"`
	Brand       string          `gorm:"size:64" json:"brand"`
	// Quantity 现货数量，任何路径都不允许写成负数
	Quantity int  `gorm:"not null;default:0" json:"quantity"`
	InStock  bool `gorm:"not null;default:false" json:"inStock"`
	// Prescription 处方药标记（仅展示用，不做拦截）
	Prescription bool     `json:"prescription"`
	Images       []string `gorm:"serializer:json" json:"images"`
	// OwnerID 创建该商品的 seller
	OwnerID string `gorm:"size:36;index;not null" json:"ownerId"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

// ProductFilter 公开目录的查询条件
type ProductFilter struct {
	Category string
	Search   string // 按 name/description/brand 模糊匹配
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	ListInStock(ctx context.Context, f ProductFilter) ([]Product, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	SetQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}
