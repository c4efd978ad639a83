package request

import "github.com/shopspring/decimal"

// ProductRequest represents a product create or update request
type ProductRequest struct {
	Name   *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Price  *decimal.Decimal `json:"price"`
	Detail *string          `json:"detail"`
	Unit   *string          `json:"unit" binding:"omitempty,max=50"`

	// CategoryID "" clears the category
	CategoryID *string `json:"category_id"`
}

// CategoryRequest represents a category create or rename request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ListRequest represents search and page parameters
type ListRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
