package service

import "farmasaude-api/internal/domain"

// Actor is the authenticated identity a handler passes down. The role is
// already normalized at the token boundary.
type Actor struct {
	ID   string
	Role domain.Role
}

// Access policy: pure functions of role and ownership, no state.
// Admin is granted seller-level order visibility; cancellation stays
// strictly ownership-based.

func CanViewAllOrders(a Actor) bool {
	return a.Role == domain.RoleSeller || a.Role == domain.RoleAdmin
}

func CanViewOrder(a Actor, o *domain.Order) bool {
	return o.CustomerID == a.ID || CanViewAllOrders(a)
}

// CanCancelOrder allows the customer who placed the order, or a seller
// owning at least one product referenced by its lines.
func CanCancelOrder(a Actor, o *domain.Order) bool {
	if a.Role == domain.RoleCustomer && o.CustomerID == a.ID {
		return true
	}
	if a.Role == domain.RoleSeller {
		for _, l := range o.Lines {
			if l.Product != nil && l.Product.OwnerID == a.ID {
				return true
			}
		}
	}
	return false
}

func CanManageProducts(a Actor) bool {
	return a.Role == domain.RoleSeller
}

func CanManageSellers(a Actor) bool {
	return a.Role == domain.RoleAdmin
}
