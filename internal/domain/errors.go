package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotPending 订单已处于终态（CANCELLED / COMPLETED），不可再翻转
	ErrOrderNotPending = errors.New("order is not pending")
)

// InsufficientStockError 库存不足：带上商品与当前可售数量，前端要展示
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
