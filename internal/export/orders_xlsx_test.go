package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/export"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteOrdersXLSX(t *testing.T) {
	kilo := 1.0

	orders := []models.Order{
		{
			ID:           uuid.New(),
			CustomerID:   uuid.New(),
			Status:       models.OrderStatusAccepted,
			PhoneNumber:  "9876543210",
			DeliveryTime: time.Date(2026, 9, 5, 16, 0, 0, 0, time.UTC),
			TotalPrice:   1100,
			UpfrontPaid:  330,
			CreatedAt:    time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{Quantity: 2, ProductName: "Chocolate Truffle", SubcategoryName: "Truffle Cakes", Kilo: &kilo},
			},
		},
		{
			ID:               uuid.New(),
			CustomerID:       uuid.New(),
			Status:           models.OrderStatusRejected,
			RejectionComment: "Out of stock",
		},
	}

	var buf bytes.Buffer

	require.NoError(t, export.WriteOrdersXLSX(&buf, orders))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "OrderID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, orders[0].ID.String(), sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "accepted", sheet.Rows[1].Cells[2].String())
	assert.Contains(t, sheet.Rows[1].Cells[8].String(), "2x Chocolate Truffle")
	assert.Contains(t, sheet.Rows[1].Cells[8].String(), "1kg")
	assert.Equal(t, "Out of stock", sheet.Rows[2].Cells[7].String())
}

func TestWriteOrdersXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteOrdersXLSX(&buf, nil))
	assert.NotZero(t, buf.Len())
}
