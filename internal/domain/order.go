package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED" // 终态
	OrderCancelled OrderStatus = "CANCELLED" // 终态
)

type Order struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string          `gorm:"size:36;index;not null" json:"customerId"`
	Customer   *User           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status     OrderStatus     `gorm:"size:16;not null;default:PENDING" json:"status"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

// OrderLine 下单时刻的快照：Price 固定为当时的商品单价，后续改价不影响历史订单
type OrderLine struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string          `gorm:"size:36;index;not null" json:"orderId"`
	ProductID string          `gorm:"size:36;index;not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

func (OrderLine) TableName() string { return "order_lines" }

type OrderRepository interface {
	// CreateWithStock 单事务完成：建单 + 建明细 + 按行条件扣减库存。
	// 任一商品扣减不满足（并发把库存抢光）整个事务回滚，
	// 返回 *InsufficientStockError。
	CreateWithStock(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	// CancelWithRestore 单事务完成：PENDING → CANCELLED 的受保护翻转 + 逐行回补库存。
	// 状态已是终态时翻转 0 行，返回 ErrOrderNotPending。
	CancelWithRestore(ctx context.Context, o *Order) error
}
