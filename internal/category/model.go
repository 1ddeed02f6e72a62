package category

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryRequest payload of creation (JSON or multipart with an optional image file).
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	Name        string `json:"name"        form:"name"        binding:"required,max=60" example:"Momo"`
	Description string `json:"description" form:"description" binding:"max=500"`
	Active      *bool  `json:"active"      form:"active"`
}

// UpdateCategoryRequest payload of partial update.
// swagger:model UpdateCategoryRequest
type UpdateCategoryRequest struct {
	Name        string  `json:"name"        form:"name"        binding:"max=60"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=500"`
	Active      *bool   `json:"active"      form:"active"`
}
