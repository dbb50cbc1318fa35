package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidKind     = errors.New("unknown stock adjustment kind")
	ErrLockContention  = errors.New("inventory busy, please try again later")
)

// InsufficientStockError carries the quantity still available so callers can
// tell the buyer "only N left" instead of a generic failure.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
