// Package templates renders the calculator UI as templ components.
package templates

import (
	"strconv"

	"driftcalc/services"
)

// CalculatorData is everything the calculator page shows.
type CalculatorData struct {
	View services.SessionView
	// Notice is shown above the categories, e.g. why a write was refused.
	Notice string
}

func (d CalculatorData) editing() bool {
	return d.View.Mode == services.ModeEditing
}

// linesFor returns the lines of one category in catalog order.
func linesFor(totals services.Totals, key string) []services.LineTotal {
	var lines []services.LineTotal
	for _, line := range totals.Lines {
		if line.Item.Category == key {
			lines = append(lines, line)
		}
	}
	return lines
}

// summaryCategories drops categories with nothing ordered.
func summaryCategories(totals services.Totals) []services.CategoryTotal {
	var out []services.CategoryTotal
	for _, ct := range totals.Categories {
		if ct.Total.IsPositive() {
			out = append(out, ct)
		}
	}
	return out
}

func maxQuantity(item services.ServiceItem) string {
	return strconv.Itoa(*item.MaxQuantity)
}
