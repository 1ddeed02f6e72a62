package order

// CreateOrderRequest payload of checkout; items come from the caller's cart.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	TableNumber int    `json:"table_number" binding:"required,min=1,max=500" example:"7"`
	Notes       string `json:"notes"        binding:"max=500"               example:"less spicy"`
}

// UpdateStatusRequest payload of a status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed preparing served completed cancelled" example:"preparing"`
}

// ListQuery is the query string accepted by the staff order listing.
type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed preparing served completed cancelled"`
	Paid   *bool  `form:"paid"`
	Table  int    `form:"table" binding:"omitempty,min=1"`
}
