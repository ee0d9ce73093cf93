package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleExportData(quantities map[string]int) ExportData {
	cat := DefaultCatalog()
	return BuildExportData(CalcTotals(cat.Items(), cat.Categories(), cat.DefaultPrices(), quantities))
}

func TestGenerateExcel_Layout(t *testing.T) {
	data := sampleExportData(map[string]int{"placement": 3, "tape-backup": 10})

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != WorkbookSheet {
		t.Fatalf("sheets = %v, want [%s]", sheets, WorkbookSheet)
	}

	rows, err := f.GetRows(WorkbookSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + 21 services + TOTAL
	if len(rows) != 23 {
		t.Fatalf("rows = %d, want 23", len(rows))
	}
	if strings.Join(rows[0], ",") != "Category,Service,Price,Quantity,Total" {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "Fysiska servrar" || first[1] != "Serverplacering" || first[2] != "2280" || first[3] != "3" || first[4] != "6840" {
		t.Errorf("first row = %v", first)
	}

	total := rows[22]
	if total[0] != TotalRowLabel || total[2] != "0" || total[3] != "0" || total[4] != "6876" {
		t.Errorf("total row = %v", total)
	}
}

func TestGenerateExcel_EmptyCatalog(t *testing.T) {
	result, err := GenerateExcel(ExportData{})
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	v, _ := f.GetCellValue(WorkbookSheet, "A2")
	if v != TotalRowLabel {
		t.Errorf("A2 = %q, want TOTAL row right after header", v)
	}
}

func TestGenerateExcel_SanitizesServiceNames(t *testing.T) {
	data := ExportData{Rows: []ExportRow{{Category: "web", Service: "=HYPERLINK(\"x\")"}}}
	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	v, _ := f.GetCellValue(WorkbookSheet, "B2")
	if !strings.HasPrefix(v, "'") {
		t.Errorf("B2 = %q, want quote-prefixed", v)
	}
}

func TestGenerateTSV(t *testing.T) {
	data := sampleExportData(map[string]int{"mssql": 2, "postgresql": 1})
	lines := strings.Split(strings.TrimSuffix(GenerateTSV(data), "\n"), "\n")

	if lines[0] != "Category\tService\tPrice\tQuantity\tTotal" {
		t.Errorf("header = %q", lines[0])
	}
	if got := lines[len(lines)-1]; got != "TOTAL\t\t0\t0\t16000" {
		t.Errorf("total line = %q", got)
	}
	if !strings.Contains(GenerateTSV(data), "Databashotell\tMSSQL inkl. 1 GB lagring\t6000\t2\t12000") {
		t.Error("missing mssql row")
	}
}

func TestBuildExportData_UnknownCategoryUsesRawKey(t *testing.T) {
	items := []ServiceItem{{ID: "a", Name: "Switch", UnitPrice: 5, Category: "nätverk"}}
	data := BuildExportData(CalcTotals(items, DefaultCategories, nil, map[string]int{"a": 1}))
	if data.Rows[0].Category != "nätverk" {
		t.Errorf("category = %q, want raw key", data.Rows[0].Category)
	}
	rows := data.TableRows()
	if rows[len(rows)-1].Category != TotalRowLabel || !rows[len(rows)-1].Total.Equal(dec(5)) {
		t.Errorf("total row = %+v", rows[len(rows)-1])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Lagring", "Lagring"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}
	for _, b := range borders {
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
}
