package model

type Product struct {
	BaseModel
	CategoryID  *string   `db:"category_id" json:"category_id"` // Nullable
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Quantity    int       `db:"quantity" json:"quantity"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	IsSugarFree bool      `db:"is_sugar_free" json:"is_sugar_free"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Category    *Category `db:"-" json:"category,omitempty"` // Joined data
}

// Available is derived from quantity on hand and never stored.
func (p *Product) Available() bool {
	return p.Quantity > 0
}
