package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"farmasaude-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

var _ domain.OrderRepository = (*OrderRepo)(nil)

// CreateWithStock 建单、建明细、扣库存放在同一个事务里。
// 扣减是条件更新（quantity >= 请求量才生效），检查与扣减之间没有窗口，
// 并发把库存抢光时受影响行数为 0，整个事务回滚。
func (r *OrderRepo) CreateWithStock(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(o).Error; err != nil {
			return err
		}
		for i := range o.Lines {
			l := &o.Lines[i]
			l.OrderID = o.ID
			if err := tx.Omit("Product").Create(l).Error; err != nil {
				return err
			}

			res := tx.Model(&domain.Product{}).
				Where("id = ? AND quantity >= ?", l.ProductID, l.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", l.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return r.stockShortfall(tx, l.ProductID, l.Quantity)
			}
			// in_stock 用扣减后的值重算，单独一条语句避免驱动间
			// SET 子句求值顺序的差异
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("in_stock", gorm.Expr("quantity > 0")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// stockShortfall 条件扣减落空后补查一次，把商品名和剩余量带给调用方
func (r *OrderRepo) stockShortfall(tx *gorm.DB, productID string, requested int) error {
	var p domain.Product
	if err := tx.First(&p, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	return &domain.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Available:   p.Quantity,
		Requested:   requested,
	}
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines").
		Preload("Lines.Product").
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Lines.Product.Owner").
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// CancelWithRestore 受保护的状态翻转 + 逐行回补库存，同一事务。
// WHERE status = PENDING 挡住并发的重复取消；回补是纯加法，不需要条件。
func (r *OrderRepo) CancelWithRestore(ctx context.Context, o *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", o.ID, domain.OrderPending).
			Update("status", domain.OrderCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotPending
		}
		for _, l := range o.Lines {
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", l.Quantity)).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("in_stock", gorm.Expr("quantity > 0")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.Status = domain.OrderCancelled
	return nil
}
