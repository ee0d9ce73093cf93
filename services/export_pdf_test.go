package services

import (
	"testing"
)

func TestGeneratePDF_Summary(t *testing.T) {
	data := sampleExportData(map[string]int{"placement": 3, "mssql": 2})

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header")
	}
}

func TestGeneratePDF_EmptyEstimate(t *testing.T) {
	result, err := GeneratePDF(sampleExportData(nil))
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}
