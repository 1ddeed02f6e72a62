package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusServed    Status = "served"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses is the closed set of order states, in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusServed, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Billable reports whether a customer may request a bill for an order in this state.
func (s Status) Billable() bool { return s == StatusServed || s == StatusCompleted }

// TaxRate is applied once, at order creation.
var TaxRate = decimal.New(5, -2)

// Item is a line item snapshot taken from the cart when the order is placed.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type Order struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Items        []Item          `json:"items"`
	TableNumber  int             `json:"table_number"`
	Notes        string          `json:"notes,omitempty"`
	Status       Status          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Paid         bool            `json:"paid"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Totals returns subtotal = sum(price x quantity), tax = round(subtotal x 5%)
// and total = subtotal + tax.
func Totals(items []Item) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	tax = subtotal.Mul(TaxRate).Round(0)
	return subtotal, tax, subtotal.Add(tax)
}

type Filter struct {
	UserID string
	Status Status
	Paid   *bool
	Table  int
	Limit  int
	Offset int
}
