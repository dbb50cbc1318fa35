package model

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Final reports whether the status admits no further transitions.
func (s OrderStatus) Final() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	BaseModel
	UserID        string      `db:"user_id" json:"user_id"`
	Total         float64     `db:"total" json:"total"`
	Status        OrderStatus `db:"status" json:"status"`
	RecipientName *string     `db:"recipient_name" json:"recipient_name"`
	Address       *string     `db:"address" json:"address"`
	Phone         *string     `db:"phone" json:"phone"`
	Notes         *string     `db:"notes" json:"notes"`
	Items         []OrderItem `db:"-" json:"items"` // Not in orders table
}

// OrderItem keeps its own price snapshot; it is never re-read from the live
// product after creation.
type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"order_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}
