package dto

type CreateOrderInput struct {
	UserID   string
	Items    []OrderItemInput
	Delivery *DeliveryInput
}

// OrderItemInput carries the price the buyer was quoted; it becomes the
// immutable snapshot on the order item.
type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type DeliveryInput struct {
	RecipientName string `json:"recipient_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
}
