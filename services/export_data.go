package services

import (
	"github.com/shopspring/decimal"
)

// Export titles and file names.
const (
	SummaryTitle     = "IT-tjänster Kostnadssammanfattning"
	ShareTitle       = "IT-tjänster Kostnadskalkyl"
	GrandTotalLabel  = "Total årskostnad"
	TotalRowLabel    = "TOTAL"
	WorkbookFileName = "kostnadskalkyl.xlsx"
	WorkbookSheet    = "Kalkyl"
	SummaryFileName  = "it-kostnader.txt"
	PDFFileName      = "it-kostnader.pdf"
)

// ExportColumns are the tabular export headers.
var ExportColumns = []string{"Category", "Service", "Price", "Quantity", "Total"}

// ExportRow is one row of the tabular export.
type ExportRow struct {
	Category string
	Service  string
	Price    decimal.Decimal
	Quantity int
	Total    decimal.Decimal
}

// CategorySummary is one category line of the textual summary.
type CategorySummary struct {
	Key   string
	Label string
	Total decimal.Decimal
}

// ExportData holds everything the export and share adapters need.
type ExportData struct {
	Rows       []ExportRow
	Categories []CategorySummary
	GrandTotal decimal.Decimal
}

// BuildExportData flattens totals into export rows, one per catalog item in
// catalog order, each labelled with its category label (or raw key).
func BuildExportData(t Totals) ExportData {
	labels := make(map[string]string, len(t.Categories))
	data := ExportData{GrandTotal: t.GrandTotal}
	for _, ct := range t.Categories {
		labels[ct.Category.Key] = ct.Category.Label
		data.Categories = append(data.Categories, CategorySummary{
			Key:   ct.Category.Key,
			Label: ct.Category.Label,
			Total: ct.Total,
		})
	}

	for _, l := range t.Lines {
		label, ok := labels[l.Item.Category]
		if !ok || label == "" {
			label = l.Item.Category
		}
		data.Rows = append(data.Rows, ExportRow{
			Category: label,
			Service:  l.Item.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Total:    l.Total,
		})
	}
	return data
}

// TableRows returns the rows followed by the trailing TOTAL row.
func (d ExportData) TableRows() []ExportRow {
	rows := make([]ExportRow, 0, len(d.Rows)+1)
	rows = append(rows, d.Rows...)
	return append(rows, ExportRow{
		Category: TotalRowLabel,
		Price:    decimal.Zero,
		Total:    d.GrandTotal,
	})
}

// NonZeroCategories returns the categories that contribute to the total.
func (d ExportData) NonZeroCategories() []CategorySummary {
	var out []CategorySummary
	for _, c := range d.Categories {
		if c.Total.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}
