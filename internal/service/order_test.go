package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmasaude-api/internal/domain"
	"farmasaude-api/pkg/utils"
)

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newMemProductRepo(ps ...*domain.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range ps {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) ListInStock(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.Quantity > 0 && (f.Category == "" || p.Category == f.Category) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]domain.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memProductRepo) Update(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memProductRepo) SetQuantity(_ context.Context, id string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return fmt.Errorf("product %s missing", id)
	}
	p.Quantity = quantity
	p.InStock = quantity > 0
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) quantity(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Quantity
}

// memOrderRepo mirrors the all-or-nothing transaction contract: every line
// must still have stock at commit time or nothing is written.
type memOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	products *memProductRepo
	seq      int // 模拟单调递增的 created_at
}

func newMemOrderRepo(products *memProductRepo) *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order), products: products}
}

func (m *memOrderRepo) CreateWithStock(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products.mu.Lock()
	defer m.products.mu.Unlock()

	for _, l := range o.Lines {
		p, ok := m.products.products[l.ProductID]
		if !ok {
			return fmt.Errorf("product %s missing", l.ProductID)
		}
		if p.Quantity < l.Quantity {
			return &domain.InsufficientStockError{
				ProductID: p.ID, ProductName: p.Name,
				Available: p.Quantity, Requested: l.Quantity,
			}
		}
	}
	for _, l := range o.Lines {
		p := m.products.products[l.ProductID]
		p.Quantity -= l.Quantity
		p.InStock = p.Quantity > 0
	}
	cp := *o
	m.seq++
	cp.CreatedAt = time.Unix(int64(m.seq), 0)
	o.CreatedAt = cp.CreatedAt
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	sortNewestFirst(out)
	return out, nil
}

// 列表契约与 ORDER BY created_at DESC 一致
func sortNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func (m *memOrderRepo) CancelWithRestore(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID]
	if !ok || stored.Status != domain.OrderPending {
		return domain.ErrOrderNotPending
	}
	m.products.mu.Lock()
	defer m.products.mu.Unlock()
	for _, l := range stored.Lines {
		if p, ok := m.products.products[l.ProductID]; ok {
			p.Quantity += l.Quantity
			p.InStock = p.Quantity > 0
		}
	}
	stored.Status = domain.OrderCancelled
	o.Status = domain.OrderCancelled
	return nil
}

func seedProduct(name string, price string, qty int, owner string) *domain.Product {
	return &domain.Product{
		ID:       utils.NewID(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
		InStock:  qty > 0,
		OwnerID:  owner,
	}
}

func TestOrderService_Create_ComputesTotalAndSnapshotsPrice(t *testing.T) {
	dipirona := seedProduct("Dipirona 500mg", "9.90", 10, "seller-1")
	vitamina := seedProduct("Vitamina C", "24.50", 5, "seller-1")
	products := newMemProductRepo(dipirona, vitamina)
	svc := NewOrderService(newMemOrderRepo(products), products)

	order, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: dipirona.ID, Quantity: 3},
		{ProductID: vitamina.ID, Quantity: 2},
	})
	require.NoError(t, err)
	// 3*9.90 + 2*24.50 = 78.70
	assert.True(t, order.Total.Equal(decimal.RequireFromString("78.70")),
		"total = %s", order.Total)
	assert.Equal(t, domain.OrderPending, order.Status)
	require.Len(t, order.Lines, 2)
	assert.True(t, order.Lines[0].Price.Equal(dipirona.Price))

	assert.Equal(t, 7, products.quantity(dipirona.ID))
	assert.Equal(t, 3, products.quantity(vitamina.ID))
}

func TestOrderService_Create_EmptyOrder(t *testing.T) {
	products := newMemProductRepo()
	svc := NewOrderService(newMemOrderRepo(products), products)
	_, err := svc.Create(context.Background(), "cust-1", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderService_Create_RejectsNonPositiveQuantity(t *testing.T) {
	p := seedProduct("Soro", "5.00", 10, "seller-1")
	products := newMemProductRepo(p)
	svc := NewOrderService(newMemOrderRepo(products), products)

	for _, qty := range []int{0, -1} {
		_, err := svc.Create(context.Background(), "cust-1", []LineRequest{
			{ProductID: p.ID, Quantity: qty},
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 10, products.quantity(p.ID))
}

func TestOrderService_Create_UnknownProduct(t *testing.T) {
	products := newMemProductRepo()
	svc := NewOrderService(newMemOrderRepo(products), products)
	_, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: "nope", Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrderService_Create_InsufficientStockLeavesNothingBehind(t *testing.T) {
	p := seedProduct("Paracetamol", "7.25", 5, "seller-1")
	products := newMemProductRepo(p)
	orders := newMemOrderRepo(products)
	svc := NewOrderService(orders, products)

	// 先卖掉 3 件，剩 2
	_, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: p.ID, Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 2, products.quantity(p.ID))

	// 再要 4 件必然失败，库存保持 2，订单数不变
	_, err = svc.Create(context.Background(), "cust-2", []LineRequest{
		{ProductID: p.ID, Quantity: 4},
	})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 4, ise.Requested)
	assert.Equal(t, p.Name, ise.ProductName)

	assert.Equal(t, 2, products.quantity(p.ID))
	all, _ := orders.ListAll(context.Background())
	assert.Len(t, all, 1)
}

func TestOrderService_Create_OneBadLineFailsWholeOrder(t *testing.T) {
	ok := seedProduct("Dorflex", "12.00", 10, "seller-1")
	low := seedProduct("Ômega 3", "39.90", 1, "seller-1")
	products := newMemProductRepo(ok, low)
	svc := NewOrderService(newMemOrderRepo(products), products)

	_, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: ok.ID, Quantity: 2},
		{ProductID: low.ID, Quantity: 5},
	})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)

	// 通过校验的那一行也不能被扣
	assert.Equal(t, 10, products.quantity(ok.ID))
	assert.Equal(t, 1, products.quantity(low.ID))
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	p := seedProduct("Ibuprofeno", "15.00", 8, "seller-1")
	products := newMemProductRepo(p)
	orders := newMemOrderRepo(products)
	svc := NewOrderService(orders, products)

	order, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: p.ID, Quantity: 6},
	})
	require.NoError(t, err)
	require.Equal(t, 2, products.quantity(p.ID))

	cancelled, err := svc.Cancel(context.Background(), order.ID,
		Actor{ID: "cust-1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, cancelled.Status)
	assert.Equal(t, 8, products.quantity(p.ID))
}

func TestOrderService_Cancel_TerminalStatesAreDistinct(t *testing.T) {
	p := seedProduct("Amoxicilina", "18.40", 5, "seller-1")
	products := newMemProductRepo(p)
	orders := newMemOrderRepo(products)
	svc := NewOrderService(orders, products)
	actor := Actor{ID: "cust-1", Role: domain.RoleCustomer}

	order, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: p.ID, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID, actor)
	require.NoError(t, err)
	require.Equal(t, 5, products.quantity(p.ID))

	// 重复取消：库存不能被回补两次
	_, err = svc.Cancel(context.Background(), order.ID, actor)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, 5, products.quantity(p.ID))

	// 已完成订单给出不同的错误
	orders.mu.Lock()
	orders.orders[order.ID].Status = domain.OrderCompleted
	orders.mu.Unlock()
	_, err = svc.Cancel(context.Background(), order.ID, actor)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestOrderService_Cancel_Authorization(t *testing.T) {
	mine := seedProduct("Colírio", "22.00", 10, "seller-owner")
	products := newMemProductRepo(mine)
	orders := newMemOrderRepo(products)
	svc := NewOrderService(orders, products)

	newOrder := func(t *testing.T) *domain.Order {
		t.Helper()
		o, err := svc.Create(context.Background(), "cust-1", []LineRequest{
			{ProductID: mine.ID, Quantity: 1},
		})
		require.NoError(t, err)
		// Cancel 的授权检查读的是 Lines[].Product.OwnerID
		orders.mu.Lock()
		stored := orders.orders[o.ID]
		for i := range stored.Lines {
			cp := *mine
			stored.Lines[i].Product = &cp
		}
		orders.mu.Unlock()
		return o
	}

	t.Run("other customer forbidden", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.Cancel(context.Background(), o.ID,
			Actor{ID: "cust-2", Role: domain.RoleCustomer})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unrelated seller forbidden", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.Cancel(context.Background(), o.ID,
			Actor{ID: "seller-other", Role: domain.RoleSeller})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owning seller allowed", func(t *testing.T) {
		o := newOrder(t)
		_, err := svc.Cancel(context.Background(), o.ID,
			Actor{ID: "seller-owner", Role: domain.RoleSeller})
		assert.NoError(t, err)
	})
}

func TestOrderService_Cancel_NotFound(t *testing.T) {
	products := newMemProductRepo()
	svc := NewOrderService(newMemOrderRepo(products), products)
	_, err := svc.Cancel(context.Background(), "missing",
		Actor{ID: "cust-1", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetByID_Visibility(t *testing.T) {
	p := seedProduct("Protetor Solar", "55.00", 4, "seller-1")
	products := newMemProductRepo(p)
	svc := NewOrderService(newMemOrderRepo(products), products)

	order, err := svc.Create(context.Background(), "cust-1", []LineRequest{
		{ProductID: p.ID, Quantity: 1},
	})
	require.NoError(t, err)

	cases := []struct {
		name  string
		actor Actor
		allow bool
	}{
		{"owner customer", Actor{ID: "cust-1", Role: domain.RoleCustomer}, true},
		{"other customer", Actor{ID: "cust-2", Role: domain.RoleCustomer}, false},
		{"any seller", Actor{ID: "seller-x", Role: domain.RoleSeller}, true},
		{"admin", Actor{ID: "adm-1", Role: domain.RoleAdmin}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.GetByID(context.Background(), order.ID, tc.actor)
			if tc.allow {
				require.NoError(t, err)
				assert.Equal(t, order.ID, got.ID)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestOrderService_ListAll_RequiresSellerOrAdmin(t *testing.T) {
	products := newMemProductRepo()
	svc := NewOrderService(newMemOrderRepo(products), products)

	_, err := svc.ListAll(context.Background(), Actor{ID: "c", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ListAll(context.Background(), Actor{ID: "s", Role: domain.RoleSeller})
	assert.NoError(t, err)
	_, err = svc.ListAll(context.Background(), Actor{ID: "a", Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

func TestOrderService_Lists_NewestFirst(t *testing.T) {
	p := seedProduct("Enxaguante Bucal", "19.90", 50, "seller-1")
	products := newMemProductRepo(p)
	svc := NewOrderService(newMemOrderRepo(products), products)

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := svc.Create(context.Background(), "cust-1", []LineRequest{
			{ProductID: p.ID, Quantity: 1},
		})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	// 夹一单别的顾客，确认不串台
	other, err := svc.Create(context.Background(), "cust-2", []LineRequest{
		{ProductID: p.ID, Quantity: 1},
	})
	require.NoError(t, err)

	mine, err := svc.ListForCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]},
		[]string{mine[0].ID, mine[1].ID, mine[2].ID})

	all, err := svc.ListAll(context.Background(), Actor{ID: "adm", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, other.ID, all[0].ID, "latest order first")
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}
}

func TestOrderService_Create_ConcurrentExhaustionNeverGoesNegative(t *testing.T) {
	p := seedProduct("Teste Rápido COVID", "30.00", 10, "seller-1")
	products := newMemProductRepo(p)
	orders := newMemOrderRepo(products)
	svc := NewOrderService(orders, products)

	const workers = 30
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.Create(context.Background(),
				fmt.Sprintf("cust-%d", n),
				[]LineRequest{{ProductID: p.ID, Quantity: 1}})
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		var ise *domain.InsufficientStockError
		require.ErrorAs(t, err, &ise)
		lost++
	}
	assert.Equal(t, 10, won)
	assert.Equal(t, workers-10, lost)
	assert.Equal(t, 0, products.quantity(p.ID))
}
