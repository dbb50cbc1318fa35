package dto

import "time"

type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

type TopSellingRow struct {
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	UnitsSold int    `db:"units_sold" json:"units_sold"`
}

type SalesByDayRow struct {
	Day        time.Time `db:"day" json:"day"`
	OrderCount int       `db:"order_count" json:"order_count"`
	Total      float64   `db:"total" json:"total"`
}

type StatusBreakdownRow struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}
