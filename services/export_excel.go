package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel writes the estimate as a single-sheet workbook: a header row,
// one row per service and a trailing TOTAL row. Prices, quantities and totals
// are numeric cells so the sheet can be recalculated.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, WorkbookSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{22, 44, 12, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(WorkbookSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#1E40AF"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	for i, h := range ExportColumns {
		if err := f.SetCellValue(WorkbookSheet, columns[i]+"1", h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}
	f.SetCellStyle(WorkbookSheet, "A1", lastCol+"1", headerStyle)

	rows := data.TableRows()
	for i, r := range rows {
		row := fmt.Sprintf("%d", i+2)
		values := []any{
			sanitizeExcelCell(r.Category),
			sanitizeExcelCell(r.Service),
			r.Price.InexactFloat64(),
			r.Quantity,
			r.Total.InexactFloat64(),
		}
		for j, v := range values {
			if err := f.SetCellValue(WorkbookSheet, columns[j]+row, v); err != nil {
				return nil, fmt.Errorf("set cell %s%s: %w", columns[j], row, err)
			}
		}
		style := rowStyle
		if i == len(rows)-1 {
			style = totalStyle
		}
		f.SetCellStyle(WorkbookSheet, "A"+row, lastCol+row, style)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateTSV renders the same table as tab-separated text, the form used
// when the workbook cannot be delivered and the table goes to the clipboard.
func GenerateTSV(data ExportData) string {
	var b strings.Builder
	b.WriteString(strings.Join(ExportColumns, "\t"))
	b.WriteByte('\n')
	for _, r := range data.TableRows() {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%d\t%s\n",
			tsvField(r.Category), tsvField(r.Service), r.Price.String(), r.Quantity, r.Total.String())
	}
	return b.String()
}

func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. User-named services end up in these cells.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
