package model

import "time"

// LedgerKind classifies a stock mutation.
type LedgerKind string

const (
	KindReserve  LedgerKind = "reserve"
	KindPurchase LedgerKind = "purchase"
	KindRestock  LedgerKind = "restock"
)

// Valid reports whether k is one of the known kinds.
func (k LedgerKind) Valid() bool {
	switch k {
	case KindReserve, KindPurchase, KindRestock:
		return true
	}
	return false
}

// Decrements reports whether the kind lowers quantity on hand.
func (k LedgerKind) Decrements() bool {
	return k == KindReserve || k == KindPurchase
}

// LedgerEntry is one stock mutation. Rows are written exactly once, inside
// the same transaction as the product quantity update, and never touched
// again.
type LedgerEntry struct {
	ID             string     `db:"id" json:"id"`
	ProductID      string     `db:"product_id" json:"product_id"`
	UserID         *string    `db:"user_id" json:"user_id"`
	Kind           LedgerKind `db:"kind" json:"kind"`
	Quantity       int        `db:"quantity" json:"quantity"`
	QuantityBefore int        `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int        `db:"quantity_after" json:"quantity_after"`
	Note           *string    `db:"note" json:"note"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
