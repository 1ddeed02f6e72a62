package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *string         `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Image        string          `json:"image,omitempty"`
	Available    bool            `json:"available"`
	Rating       decimal.Decimal `json:"rating"`
	NumReviews   int             `json:"num_reviews"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Sort orders accepted by listings.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
)

type Query struct {
	Search     string
	CategoryID string
	Available  *bool
	Sort       string
	Limit      int
	Offset     int
}

// ListQuery is the query string accepted by GET /products.
type ListQuery struct {
	Search     string `form:"search"`
	CategoryID string `form:"category"`
	Available  *bool  `form:"available"`
	Sort       string `form:"sort" binding:"omitempty,oneof=newest price_asc price_desc rating"`
}

// CreateProductRequest payload of creation (JSON or multipart with an optional image file).
// Price is a decimal string to avoid float rounding.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"name"        form:"name"        binding:"required,max=100" example:"Chicken Momo"`
	Description string `json:"description" form:"description" binding:"max=1000"         example:"Steamed, 10 pcs"`
	Price       string `json:"price"       form:"price"       binding:"required"         example:"300"`
	CategoryID  string `json:"category_id" form:"category_id"`
	Available   *bool  `json:"available"   form:"available"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string  `json:"name"        form:"name"        binding:"max=100"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=1000"`
	Price       string  `json:"price"       form:"price"`
	CategoryID  *string `json:"category_id" form:"category_id"`
	Available   *bool   `json:"available"   form:"available"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
