package order

import "errors"

var (
	ErrEmptyCart       = errors.New("order must contain at least one item")
	ErrInvalidItem     = errors.New("order item quantity and price must be positive")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrOrderFinal      = errors.New("order status can no longer change")
	ErrForbidden       = errors.New("order belongs to another user")
)
