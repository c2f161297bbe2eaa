package request

// ProductRequest represents the create/update product request body
type ProductRequest struct {
	GroupID      *string `json:"group_id"`
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	MonthlyPrice string  `json:"monthly_price" binding:"required"`
	AnnualPrice  string  `json:"annual_price" binding:"required"`
	SetupFee     string  `json:"setup_fee"`
	Active       bool    `json:"active"`
	SortOrder    int     `json:"sort_order"`
}

// ProductGroupRequest represents the create/update product group request body
type ProductGroupRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}
