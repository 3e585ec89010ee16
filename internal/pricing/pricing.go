// Package pricing resolves unit prices for cart lines and derives order
// totals. Resolution never fails: missing or mismatched pricing data degrades
// to a zero price, which the storefront renders as "Contact for Price".
package pricing

import (
	"strconv"

	"github.com/ovenfresh/bakery-platform/internal/models"
)

// UpfrontShare is the mandatory upfront payment ratio collected at checkout.
const UpfrontShare = 0.30

// WeightKey formats a kilo selection the way the price table is keyed,
// e.g. 1 -> "1kg", 0.5 -> "0.5kg".
func WeightKey(kilo float64) string {
	return strconv.FormatFloat(kilo, 'f', -1, 64) + "kg"
}

// ResolveUnitPrice maps a cart line and its subcategory pricing onto a single
// unit price. Priority order, first match wins:
//
//  1. kilo set and a weight price table exists: table value for the weight
//     key, 0 when the key is absent.
//  2. pieces set and a fixed price exists: the fixed price.
//  3. a fixed price exists: the fixed price.
//  4. otherwise 0.
func ResolveUnitPrice(item *models.CartItem, sub *models.Subcategory) float64 {
	if item == nil || sub == nil {
		return 0
	}

	if item.Kilo != nil && len(sub.KiloToPriceMap) > 0 {
		return sub.KiloToPriceMap[WeightKey(*item.Kilo)]
	}

	if item.Pieces != nil && sub.Price != nil {
		return *sub.Price
	}

	if sub.Price != nil {
		return *sub.Price
	}

	return 0
}

// Line is one priced order line.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Breakdown is the derived money view of a set of lines. Remaining is defined
// as Total minus Upfront so the two always sum back to Total exactly.
type Breakdown struct {
	Subtotal  float64 `json:"subtotal"`
	Total     float64 `json:"total"`
	Upfront   float64 `json:"upfront_required"`
	Remaining float64 `json:"remaining_balance"`
}

// Totals sums the given lines only; callers decide which cart lines are
// selected. No tax, discount, or shipping is modeled.
func Totals(lines []Line) Breakdown {
	var subtotal float64

	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}

	total := subtotal
	upfront := total * UpfrontShare

	return Breakdown{
		Subtotal:  subtotal,
		Total:     total,
		Upfront:   upfront,
		Remaining: total - upfront,
	}
}
