// Package export renders admin data dumps as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/tealeg/xlsx"
)

// WriteOrdersXLSX streams the given orders as a single-sheet workbook. Each
// order is one row; its items are flattened into a readable summary column.
func WriteOrdersXLSX(w io.Writer, orders []models.Order) error {

	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"OrderID", "CustomerID", "Status", "PhoneNumber", "DeliveryTime",
		"TotalPrice", "UpfrontPaid", "RejectionComment", "Items", "CreatedAt",
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.ID.String())
		row.AddCell().SetValue(o.CustomerID.String())
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.PhoneNumber)
		row.AddCell().SetValue(o.DeliveryTime.Format("2006-01-02 15:04"))
		row.AddCell().SetValue(o.TotalPrice)
		row.AddCell().SetValue(o.UpfrontPaid)
		row.AddCell().SetValue(o.RejectionComment)
		row.AddCell().SetValue(itemSummary(o.Items))
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

func itemSummary(items []models.OrderItem) string {

	parts := make([]string, 0, len(items))

	for _, item := range items {
		part := fmt.Sprintf("%dx %s (%s)", item.Quantity, item.ProductName, item.SubcategoryName)

		if item.Kilo != nil {
			part += fmt.Sprintf(" %gkg", *item.Kilo)
		}

		if item.Pieces != nil {
			part += fmt.Sprintf(" %dpc", *item.Pieces)
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, "; ")
}
