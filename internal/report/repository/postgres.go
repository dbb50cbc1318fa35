package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sweetshop/backend/internal/report/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) TopSelling(ctx context.Context, f *dto.ReportFilters) ([]dto.TopSellingRow, error) {
	var rows []dto.TopSellingRow

	conditions := []string{"l.kind IN ('reserve', 'purchase')"}
	args := map[string]interface{}{}

	if f.StartDate != nil {
		conditions = append(conditions, "l.created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "l.created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	query := `
        SELECT l.product_id, p.name, SUM(l.quantity) AS units_sold
        FROM stock_ledger l
        JOIN products p ON p.id = l.product_id
        WHERE ` + strings.Join(conditions, " AND ") + `
        GROUP BY l.product_id, p.name
        ORDER BY units_sold DESC
    `
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &rows, args)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *PGRepository) SalesByDay(ctx context.Context, f *dto.ReportFilters) ([]dto.SalesByDayRow, error) {
	var rows []dto.SalesByDayRow

	conditions := []string{"status <> 'cancelled'"}
	args := map[string]interface{}{}

	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	query := `
        SELECT date_trunc('day', created_at) AS day, count(*) AS order_count, COALESCE(SUM(total), 0) AS total
        FROM orders
        WHERE ` + strings.Join(conditions, " AND ") + `
        GROUP BY day
        ORDER BY day ASC
    `

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &rows, args)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *PGRepository) OrderStatusBreakdown(ctx context.Context) ([]dto.StatusBreakdownRow, error) {
	var rows []dto.StatusBreakdownRow

	query := `
        SELECT status, count(*) AS count
        FROM orders
        GROUP BY status
        ORDER BY status ASC
    `
	err := r.DB.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
