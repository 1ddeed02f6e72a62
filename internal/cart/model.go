package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a cart line populated with the product's current name, price and image.
type Item struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Available bool            `json:"available"`
}

func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// View is the JSON shape returned by the cart endpoints.
type View struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Items     []Item          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Cart) View() View {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return View{ID: c.ID, UserID: c.UserID, Items: c.Items, Subtotal: c.Subtotal(), ItemCount: n, UpdatedAt: c.UpdatedAt}
}

// AddItemRequest payload to add a product to the cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"     example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   binding:"omitempty,min=1,max=99" example:"2"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}
