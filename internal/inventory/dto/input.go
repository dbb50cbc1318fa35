package dto

import "github.com/sweetshop/backend/internal/model"

type AdjustStockInput struct {
	ProductID    string
	Quantity     int
	Kind         model.LedgerKind
	ActingUserID string // empty for system-originated adjustments
	Note         string
}
