// Package report renders spreadsheet exports for the admin dashboard.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/foody-app/foody-api/internal/order"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeaders = []string{
	"Order ID", "Created At", "Customer", "Table", "Items",
	"Status", "Subtotal", "Tax", "Total", "Paid", "Notes",
}

// WriteOrders writes an Orders sheet and a per-line Items sheet to w.
// The last Orders row carries the grand total of all listed orders.
func WriteOrders(w io.Writer, orders []order.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	header := sheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().SetValue(h)
	}

	grand := decimal.Zero
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetInt(o.TableNumber)
		row.AddCell().SetValue(itemSummary(o.Items))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.Subtotal.StringFixed(2))
		row.AddCell().SetValue(o.Tax.StringFixed(2))
		row.AddCell().SetValue(o.Total.StringFixed(2))
		row.AddCell().SetValue(yesNo(o.Paid))
		row.AddCell().SetValue(o.Notes)
		grand = grand.Add(o.Total)
	}
	footer := sheet.AddRow()
	for i := 0; i < len(orderHeaders); i++ {
		v := ""
		switch i {
		case 0:
			v = "TOTAL"
		case 8:
			v = grand.StringFixed(2)
		}
		footer.AddCell().SetString(v)
	}

	items, err := file.AddSheet("Items")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	ih := items.AddRow()
	for _, h := range []string{"Order ID", "Product ID", "Name", "Unit Price", "Quantity", "Line Total"} {
		ih.AddCell().SetValue(h)
	}
	for _, o := range orders {
		for _, it := range o.Items {
			row := items.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(it.ProductID)
			row.AddCell().SetValue(it.Name)
			row.AddCell().SetValue(it.Price.StringFixed(2))
			row.AddCell().SetInt(it.Quantity)
			row.AddCell().SetValue(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2))
		}
	}

	return file.Write(w)
}

func itemSummary(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
