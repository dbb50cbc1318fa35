package product

import (
	"context"

	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// Update never touches the quantity column; stock is owned by the
	// inventory adjustment protocol.
	Update(ctx context.Context, product *model.Product) error

	// Delete deactivates; rows referenced by ledger entries and order items
	// are never removed.
	Delete(ctx context.Context, id string) error
}
