package order

import (
	"context"

	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/order/dto"
)

type Repository interface {
	// Create persists the order and all of its items in one transaction.
	// Every referenced product must exist; a single miss aborts the whole
	// creation with ErrProductNotFound.
	Create(ctx context.Context, o *model.Order) error

	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// UpdateStatus returns ErrOrderNotFound when no row matches.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
