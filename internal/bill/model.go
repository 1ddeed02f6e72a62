package bill

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodEsewa  PaymentMethod = "esewa"
	MethodKhalti PaymentMethod = "khalti"
	MethodBank   PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodEsewa, MethodKhalti, MethodBank:
		return true
	}
	return false
}

type Status string

const (
	StatusGenerated Status = "generated"
	StatusRequested Status = "requested"
	StatusPaid      Status = "paid"
)

type Bill struct {
	ID            string          `json:"id"`
	BillNumber    string          `json:"bill_number"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	TableNumber   int             `json:"table_number,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paid_at"`
	Status        Status          `json:"status"`
	RequestedBy   string          `json:"requested_by"`
	CallWaiter    bool            `json:"call_waiter"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewNumber returns a bill number of the form BILL-20240131-9F3A1C.
func NewNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("BILL-%s-%s", at.Format("20060102"), suffix)
}

type Filter struct {
	UserID string
	Status Status
	Paid   *bool
	Limit  int
	Offset int
}

// GenerateRequest payload of staff bill generation.
// swagger:model GenerateBillRequest
type GenerateRequest struct {
	OrderID       string `json:"order_id"       binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash esewa khalti bank" example:"cash"`
}

// RequestBillRequest payload of a customer asking for the bill.
// swagger:model RequestBillRequest
type RequestBillRequest struct {
	OrderID    string `json:"order_id"    binding:"required"`
	CallWaiter bool   `json:"call_waiter" example:"true"`
}

// PayRequest payload of marking a bill paid; method defaults to cash.
// swagger:model PayBillRequest
type PayRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash esewa khalti bank" example:"esewa"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=generated requested paid"`
	Paid   *bool  `form:"paid"`
}
