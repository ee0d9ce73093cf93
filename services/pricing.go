// Package services provides the catalog, session state, pricing aggregation,
// formatting and export logic of the cost calculator.
package services

import (
	"github.com/shopspring/decimal"
)

// LineTotal is one item's contribution to the estimate.
type LineTotal struct {
	Item     ServiceItem
	Price    decimal.Decimal
	Quantity int
	Total    decimal.Decimal
}

// CategoryTotal sums the lines of one category. Lines holds only the items
// with a positive quantity, which is what summaries display.
type CategoryTotal struct {
	Category Category
	Known    bool
	Lines    []LineTotal
	Total    decimal.Decimal
}

// Totals is the derived result of an estimate. It is recomputed from its
// inputs every time and never stored.
type Totals struct {
	Lines      []LineTotal
	Categories []CategoryTotal
	GrandTotal decimal.Decimal
}

// CategoryTotal returns the subtotal for key, or zero for unknown keys.
func (t Totals) CategoryTotal(key string) decimal.Decimal {
	for _, ct := range t.Categories {
		if ct.Category.Key == key {
			return ct.Total
		}
	}
	return decimal.Zero
}

// EffectivePrice returns the override for item if present, otherwise the
// item's own unit price. An explicit zero override is honoured.
func EffectivePrice(item ServiceItem, prices map[string]float64) float64 {
	if p, ok := prices[item.ID]; ok {
		return p
	}
	return item.UnitPrice
}

// CalcLineTotal multiplies an effective price by a quantity.
func CalcLineTotal(price float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
}

// CalcTotals aggregates items, price overrides and quantities into line,
// category and grand totals. Categories are reported in the order given,
// followed by any category referenced only by items, in first-seen order.
// Quantities for ids not present in items are ignored. Accumulation is exact
// decimal arithmetic, so the result does not depend on summation order.
func CalcTotals(items []ServiceItem, categories []Category, prices map[string]float64, quantities map[string]int) Totals {
	totals := Totals{
		Lines:      make([]LineTotal, 0, len(items)),
		GrandTotal: decimal.Zero,
	}

	index := make(map[string]int, len(categories))
	for _, cat := range categories {
		index[cat.Key] = len(totals.Categories)
		totals.Categories = append(totals.Categories, CategoryTotal{Category: cat, Known: true, Total: decimal.Zero})
	}

	for _, item := range items {
		price := EffectivePrice(item, prices)
		qty := quantities[item.ID]
		line := LineTotal{
			Item:     item,
			Price:    decimal.NewFromFloat(price),
			Quantity: qty,
			Total:    CalcLineTotal(price, qty),
		}
		totals.Lines = append(totals.Lines, line)

		i, ok := index[item.Category]
		if !ok {
			i = len(totals.Categories)
			index[item.Category] = i
			totals.Categories = append(totals.Categories, CategoryTotal{
				Category: Category{Key: item.Category, Label: item.Category},
				Total:    decimal.Zero,
			})
		}
		ct := &totals.Categories[i]
		ct.Total = ct.Total.Add(line.Total)
		if qty > 0 {
			ct.Lines = append(ct.Lines, line)
		}
	}

	for _, ct := range totals.Categories {
		totals.GrandTotal = totals.GrandTotal.Add(ct.Total)
	}
	return totals
}
