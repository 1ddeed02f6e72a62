package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/foody-app/foody-api/internal/order"
)

func TestWriteOrders(t *testing.T) {
	momo := order.Item{ProductID: "p1", Name: "Momo", Price: decimal.NewFromInt(300), Quantity: 2}
	tea := order.Item{ProductID: "p2", Name: "Tea", Price: decimal.NewFromInt(50), Quantity: 1}
	orders := []order.Order{
		{
			ID:           "o1",
			CustomerName: "Sita",
			TableNumber:  4,
			Status:       order.StatusServed,
			Paid:         true,
			Items:        []order.Item{momo},
			Subtotal:     decimal.NewFromInt(600),
			Tax:          decimal.NewFromInt(30),
			Total:        decimal.NewFromInt(630),
			CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          "o2",
			TableNumber: 2,
			Status:      order.StatusPending,
			Items:       []order.Item{tea},
			Total:       decimal.NewFromInt(53),
		},
	}

	var buf bytes.Buffer
	if err := WriteOrders(&buf, orders); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(f.Sheets) != 2 {
		t.Fatalf("sheets=%d", len(f.Sheets))
	}
	rows := f.Sheets[0].Rows
	if len(rows) != 4 {
		t.Fatalf("rows=%d", len(rows))
	}
	if got := rows[1].Cells[4].String(); got != "Momo x2" {
		t.Fatalf("items=%q", got)
	}
	if got := rows[1].Cells[8].String(); got != "630.00" {
		t.Fatalf("total=%q", got)
	}
	if got := rows[3].Cells[8].String(); got != "683.00" {
		t.Fatalf("grand=%q", got)
	}
	if got := f.Sheets[1].Rows[1].Cells[5].String(); got != "600.00" {
		t.Fatalf("line total=%q", got)
	}
}
