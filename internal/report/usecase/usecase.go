package usecase

import (
	"context"

	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/report"
	"github.com/sweetshop/backend/internal/report/dto"
)

const (
	defaultTopSellingLimit = 10
	maxTopSellingLimit     = 100
)

type reportUseCase struct {
	repo   report.Repository
	logger logger.ZapLogger
}

func NewReportUseCase(repo report.Repository, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *reportUseCase) TopSelling(ctx context.Context, filters *dto.ReportFilters) ([]dto.TopSellingRow, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultTopSellingLimit
	}
	if filters.Limit > maxTopSellingLimit {
		filters.Limit = maxTopSellingLimit
	}
	return uc.repo.TopSelling(ctx, filters)
}

func (uc *reportUseCase) SalesByDay(ctx context.Context, filters *dto.ReportFilters) ([]dto.SalesByDayRow, error) {
	return uc.repo.SalesByDay(ctx, filters)
}

func (uc *reportUseCase) OrderStatusBreakdown(ctx context.Context) ([]dto.StatusBreakdownRow, error) {
	return uc.repo.OrderStatusBreakdown(ctx)
}
