package dto

type CreateProductInput struct {
	CategoryID      string
	Name            string
	Description     string
	Price           float64
	InitialQuantity int
	ImageURL        string
	IsFeatured      bool
	IsSugarFree     bool
	ActingUserID    string // admin creating the product; attributed on the initial restock
}

// UpdateProductInput deliberately has no quantity field: stock moves only
// through the adjustment protocol.
type UpdateProductInput struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	IsFeatured  bool
	IsSugarFree bool
	IsActive    bool
}
