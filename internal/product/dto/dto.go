package dto

type ProductFilters struct {
	CategoryID  string
	IsFeatured  *bool
	IsSugarFree *bool
	IsActive    *bool
	InStock     *bool
	SearchQuery string // name or description search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
