package inventory

import (
	"context"

	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
)

type Repository interface {
	// AdjustStock applies the quantity change and appends the ledger entry in
	// one atomic unit. The read-check-write is serialized per product row, so
	// concurrent decrements can never drive quantity below zero.
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, *model.LedgerEntry, error)

	// Ledger reads
	ListLedger(ctx context.Context, filters *dto.LedgerFilters) ([]model.LedgerEntry, int, error)
}
