package services

import (
	"testing"
)

func TestGenerateSummaryText(t *testing.T) {
	data := sampleExportData(map[string]int{"placement": 3, "mssql": 2, "postgresql": 1})

	want := "IT-tjänster Kostnadssammanfattning\n" +
		"=====================================\n\n" +
		"Fysiska servrar: 6 840 kr\n" +
		"Databashotell: 16 000 kr\n" +
		"\nTotal årskostnad: 22 840 kr\n" +
		"Alla priser exklusive moms\n"

	if got := GenerateSummaryText(data); got != want {
		t.Errorf("GenerateSummaryText() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerateSummaryText_Empty(t *testing.T) {
	want := "IT-tjänster Kostnadssammanfattning\n" +
		"=====================================\n\n" +
		"\nTotal årskostnad: 0 kr\n" +
		"Alla priser exklusive moms\n"

	if got := GenerateSummaryText(sampleExportData(nil)); got != want {
		t.Errorf("GenerateSummaryText() =\n%s\nwant\n%s", got, want)
	}
}
