package stats

import "github.com/shopspring/decimal"

type Totals struct {
	Users         int64           `json:"users"`
	Products      int64           `json:"products"`
	Orders        int64           `json:"orders"`
	PendingOrders int64           `json:"pending_orders"`
	PendingBills  int64           `json:"pending_bills"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DayPoint struct {
	Day     string          `json:"day"` // YYYY-MM-DD
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CategorySales struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type MethodStat struct {
	Method string          `json:"method"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type HourPoint struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Period is the order count and paid revenue of a time window.
type Period struct {
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Growth holds month-over-month percentages; nil when last month was zero.
type Growth struct {
	Orders  *float64 `json:"orders"`
	Revenue *float64 `json:"revenue"`
}

type Dashboard struct {
	Totals          Totals          `json:"totals"`
	ThisMonth       Period          `json:"this_month"`
	LastMonth       Period          `json:"last_month"`
	Growth          Growth          `json:"growth"`
	OrdersByStatus  []StatusCount   `json:"orders_by_status"`
	RevenueByDay    []DayPoint      `json:"revenue_by_day"`
	SalesByCategory []CategorySales `json:"sales_by_category"`
	PaymentMethods  []MethodStat    `json:"payment_methods"`
	OrdersByHour    []HourPoint     `json:"orders_by_hour"`
	TopProducts     []TopProduct    `json:"top_products"`
}
