package services

import (
	"strings"
)

// GenerateSummaryText renders the short per-category summary:
//
//	IT-tjänster Kostnadssammanfattning
//	=====================================
//
//	Lagring: 1 200 kr
//
//	Total årskostnad: 1 200 kr
//	Alla priser exklusive moms
//
// Categories without cost are left out.
func GenerateSummaryText(data ExportData) string {
	var b strings.Builder
	b.WriteString(SummaryTitle + "\n")
	b.WriteString(strings.Repeat("=", 37) + "\n\n")
	for _, c := range data.NonZeroCategories() {
		b.WriteString(c.Label + ": " + FormatSEK(c.Total) + "\n")
	}
	b.WriteString("\n" + GrandTotalLabel + ": " + FormatSEK(data.GrandTotal) + "\n")
	b.WriteString(VATNotice + "\n")
	return b.String()
}
