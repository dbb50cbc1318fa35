package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sweetshop/backend/internal/inventory"
	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// AdjustStock performs the read-check-write against the product row and the
// ledger append in a single transaction. The FOR UPDATE read holds the row
// lock until commit, so two concurrent decrements against the same product
// serialize and the loser sees the already-decremented quantity.
func (r *PGRepository) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, *model.LedgerEntry, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var product model.Product
	err = tx.GetContext(ctx, &product,
		`SELECT * FROM products WHERE id = $1 FOR UPDATE`, input.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, inventory.ErrProductNotFound
		}
		return nil, nil, fmt.Errorf("lock product row: %w", err)
	}

	before := product.Quantity
	if input.Kind.Decrements() {
		if before < input.Quantity {
			return nil, nil, &inventory.InsufficientStockError{
				ProductID: input.ProductID,
				Requested: input.Quantity,
				Available: before,
			}
		}
		product.Quantity = before - input.Quantity
	} else {
		product.Quantity = before + input.Quantity
	}

	now := time.Now()
	product.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET quantity = $1, updated_at = $2 WHERE id = $3`,
		product.Quantity, now, product.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("update product quantity: %w", err)
	}

	entry := &model.LedgerEntry{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Kind:           input.Kind,
		Quantity:       input.Quantity,
		QuantityBefore: before,
		QuantityAfter:  product.Quantity,
		CreatedAt:      now,
	}
	if input.ActingUserID != "" {
		entry.UserID = &input.ActingUserID
	}
	if input.Note != "" {
		entry.Note = &input.Note
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO stock_ledger (
            id, product_id, user_id, kind, quantity,
            quantity_before, quantity_after, note, created_at
        )
        VALUES (
            :id, :product_id, :user_id, :kind, :quantity,
            :quantity_before, :quantity_after, :note, :created_at
        )
    `, entry)
	if err != nil {
		return nil, nil, fmt.Errorf("append ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &product, entry, nil
}

func (r *PGRepository) ListLedger(ctx context.Context, f *dto.LedgerFilters) ([]model.LedgerEntry, int, error) {
	var entries []model.LedgerEntry
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.UserID != "" {
		conditions = append(conditions, "user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_ledger" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_ledger" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &entries, args)
	return entries, count, err
}
