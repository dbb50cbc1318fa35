package report

import (
	"context"

	"github.com/sweetshop/backend/internal/report/dto"
)

type UseCase interface {
	TopSelling(ctx context.Context, filters *dto.ReportFilters) ([]dto.TopSellingRow, error)
	SalesByDay(ctx context.Context, filters *dto.ReportFilters) ([]dto.SalesByDayRow, error)
	OrderStatusBreakdown(ctx context.Context) ([]dto.StatusBreakdownRow, error)
}
