package dto

import (
	"time"

	"github.com/sweetshop/backend/internal/model"
)

type OrderFilters struct {
	UserID    string
	Status    model.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}
