package dto

import (
	"time"

	"github.com/sweetshop/backend/internal/model"
)

type LedgerFilters struct {
	ProductID string
	UserID    string
	Kind      model.LedgerKind
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// AdjustStockResult is returned to the caller after a successful
// adjustment; the entry id doubles as the receipt.
type AdjustStockResult struct {
	Product *model.Product     `json:"product"`
	Entry   *model.LedgerEntry `json:"entry"`
}
