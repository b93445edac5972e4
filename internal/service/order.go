package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"farmasaude-api/internal/domain"
	"farmasaude-api/pkg/utils"
)

// LineRequest is one requested order line: product and quantity.
type LineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Create validates every requested line before touching anything, then hands
// the whole unit (order + lines + stock decrements) to the repository as one
// transaction. The price on each line is snapshotted at validation time.
func (s *OrderService) Create(ctx context.Context, customerID string, reqs []LineRequest) (*domain.Order, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}

	total := decimal.Zero
	lines := make([]domain.OrderLine, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, req.ProductID)
		}
		p, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
		}
		if p.Quantity < req.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Quantity,
				Requested:   req.Quantity,
			}
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(req.Quantity))))
		lines = append(lines, domain.OrderLine{
			ID:        utils.NewID(),
			ProductID: p.ID,
			Quantity:  req.Quantity,
			Price:     p.Price,
		})
	}

	order := &domain.Order{
		ID:         utils.NewID(),
		CustomerID: customerID,
		Total:      total,
		Status:     domain.OrderPending,
		Lines:      lines,
	}
	if err := s.orders.CreateWithStock(ctx, order); err != nil {
		// A line losing the race to a concurrent checkout surfaces the same
		// way as being out of stock up front.
		var ise *domain.InsufficientStockError
		if errors.As(err, &ise) {
			return nil, ise
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	return s.hydrate(ctx, order.ID)
}

// Cancel flips a pending order to CANCELLED and restores every line's stock.
func (s *OrderService) Cancel(ctx context.Context, orderID string, actor Actor) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := terminalStateErr(order.Status); err != nil {
		return nil, err
	}
	if !CanCancelOrder(actor, order) {
		return nil, ErrForbidden
	}

	if err := s.orders.CancelWithRestore(ctx, order); err != nil {
		if errors.Is(err, domain.ErrOrderNotPending) {
			// Lost a race with another cancel/complete; report the state it
			// actually ended up in.
			if cur, e := s.orders.FindByID(ctx, orderID); e == nil && cur != nil {
				return nil, terminalStateErr(cur.Status)
			}
			return nil, ErrAlreadyCancelled
		}
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return order, nil
}

func terminalStateErr(st domain.OrderStatus) error {
	switch st {
	case domain.OrderCancelled:
		return ErrAlreadyCancelled
	case domain.OrderCompleted:
		return ErrAlreadyCompleted
	}
	return nil
}

func (s *OrderService) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) ListAll(ctx context.Context, actor Actor) ([]domain.Order, error) {
	if !CanViewAllOrders(actor) {
		return nil, ErrForbidden
	}
	return s.orders.ListAll(ctx)
}

func (s *OrderService) GetByID(ctx context.Context, orderID string, actor Actor) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanViewOrder(actor, order) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) hydrate(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
