package pricing_test

import (
	"testing"

	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestWeightKey(t *testing.T) {
	assert.Equal(t, "1kg", pricing.WeightKey(1))
	assert.Equal(t, "0.5kg", pricing.WeightKey(0.5))
	assert.Equal(t, "2.25kg", pricing.WeightKey(2.25))
}

func TestResolveUnitPrice(t *testing.T) {
	t.Run("Weight Table Match", func(t *testing.T) {
		item := &models.CartItem{Kilo: floatPtr(1)}
		sub := &models.Subcategory{KiloToPriceMap: map[string]float64{"1kg": 550, "2kg": 1000}}

		assert.Equal(t, float64(550), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Weight Table Miss Resolves To Zero", func(t *testing.T) {
		item := &models.CartItem{Kilo: floatPtr(3)}
		sub := &models.Subcategory{KiloToPriceMap: map[string]float64{"1kg": 550}}

		assert.Equal(t, float64(0), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Weight Table Takes Precedence Over Fixed Price", func(t *testing.T) {
		item := &models.CartItem{Kilo: floatPtr(2)}
		sub := &models.Subcategory{
			Price:          floatPtr(120),
			KiloToPriceMap: map[string]float64{"2kg": 1000},
		}

		assert.Equal(t, float64(1000), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Pieces Use Fixed Price", func(t *testing.T) {
		item := &models.CartItem{Pieces: intPtr(6)}
		sub := &models.Subcategory{Price: floatPtr(45)}

		assert.Equal(t, float64(45), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Plain Fixed Price", func(t *testing.T) {
		item := &models.CartItem{}
		sub := &models.Subcategory{Price: floatPtr(200)}

		assert.Equal(t, float64(200), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("No Pricing Data Resolves To Zero", func(t *testing.T) {
		item := &models.CartItem{Pieces: intPtr(2)}
		sub := &models.Subcategory{}

		assert.Equal(t, float64(0), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Kilo Set But No Table Falls Back To Fixed Price", func(t *testing.T) {
		item := &models.CartItem{Kilo: floatPtr(1)}
		sub := &models.Subcategory{Price: floatPtr(300)}

		assert.Equal(t, float64(300), pricing.ResolveUnitPrice(item, sub))
	})

	t.Run("Nil Inputs", func(t *testing.T) {
		assert.Equal(t, float64(0), pricing.ResolveUnitPrice(nil, nil))
		assert.Equal(t, float64(0), pricing.ResolveUnitPrice(&models.CartItem{}, nil))
	})
}

func TestTotals(t *testing.T) {
	t.Run("Thirty Percent Upfront", func(t *testing.T) {
		b := pricing.Totals([]pricing.Line{{UnitPrice: 550, Quantity: 2}})

		assert.Equal(t, float64(1100), b.Subtotal)
		assert.Equal(t, float64(1100), b.Total)
		assert.InDelta(t, 330, b.Upfront, 1e-9)
		assert.InDelta(t, 770, b.Remaining, 1e-9)
	})

	t.Run("Upfront And Remaining Sum To Total", func(t *testing.T) {
		b := pricing.Totals([]pricing.Line{
			{UnitPrice: 99.99, Quantity: 3},
			{UnitPrice: 45, Quantity: 1},
			{UnitPrice: 0.1, Quantity: 7},
		})

		assert.Equal(t, b.Total, b.Upfront+b.Remaining)
	})

	t.Run("Empty Lines", func(t *testing.T) {
		b := pricing.Totals(nil)

		assert.Equal(t, float64(0), b.Total)
		assert.Equal(t, float64(0), b.Upfront)
		assert.Equal(t, float64(0), b.Remaining)
	})

	t.Run("Zero Priced Lines Contribute Nothing", func(t *testing.T) {
		b := pricing.Totals([]pricing.Line{
			{UnitPrice: 0, Quantity: 5},
			{UnitPrice: 100, Quantity: 1},
		})

		assert.Equal(t, float64(100), b.Total)
	})
}
