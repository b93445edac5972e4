package service

import "errors"

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be a positive integer")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("access denied")

	// Both are the InvalidState kind; callers surface distinct messages.
	ErrAlreadyCancelled = errors.New("order has already been cancelled")
	ErrAlreadyCompleted = errors.New("order has already been finalized and cannot be cancelled")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotASeller         = errors.New("operation allowed only for seller accounts")

	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)
