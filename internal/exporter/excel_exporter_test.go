package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roll-call/internal/config"
	"roll-call/internal/model"
	"roll-call/internal/roster"

	"github.com/xuri/excelize/v2"
)

func TestExcelExportLeavesInputUntouched(t *testing.T) {
	tmpDir := t.TempDir()

	// 1. Build a master workbook on disk
	f := excelize.NewFile()
	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	f.SetCellValue(sheetName, "A1", "Email")
	f.SetCellValue(sheetName, "A3", "alice@x.edu")
	masterPath := filepath.Join(tmpDir, "master.xlsx")
	if err := f.SaveAs(masterPath); err != nil {
		t.Fatal(err)
	}
	f.Close()

	originalBytes, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatal(err)
	}

	// 2. Open, mutate, export
	sheet, err := roster.OpenExcel(masterPath)
	if err != nil {
		t.Fatal(err)
	}
	defer sheet.Close()
	sheet.SetInt(3, 2, 1)

	cfg := &config.Config{
		Input:  config.InputConfig{Master: masterPath},
		Output: config.OutputConfig{Dir: tmpDir, Suffix: "_UPDATED"},
	}
	summary := &model.RunSummary{}

	exp := NewExcelExporter(sheet)
	if err := exp.Export(summary, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// 3. Output exists with the suffix naming convention
	outputPath := filepath.Join(tmpDir, "master_UPDATED.xlsx")
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Fatal("Output workbook was not created")
	}

	// 4. The mutation is in the output
	out, err := excelize.OpenFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	v, err := out.GetCellValue(out.GetSheetName(out.GetActiveSheetIndex()), "B3")
	if err != nil {
		t.Fatal(err)
	}
	if v != "1" {
		t.Errorf("Output B3 = %q, expected 1", v)
	}

	// 5. The input file on disk is byte-identical to before the run
	afterBytes, err := os.ReadFile(masterPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(afterBytes) != string(originalBytes) {
		t.Error("Input master workbook was modified on disk")
	}
}

func TestJSONExportWritesSummary(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &config.Config{
		Output: config.OutputConfig{Dir: tmpDir, ReportName: "attendance-summary"},
	}
	summary := &model.RunSummary{
		LectureLabel:  "Lecture 2",
		PresentMarked: 7,
	}

	exp := NewJSONExporter()
	if err := exp.Export(summary, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "attendance-summary.json"))
	if err != nil {
		t.Fatalf("Report not written: %v", err)
	}
	contents := string(data)
	for _, want := range []string{"\"lecture_label\": \"Lecture 2\"", "\"present_marked\": 7"} {
		if !strings.Contains(contents, want) {
			t.Errorf("Report missing %q:\n%s", want, contents)
		}
	}
}

func TestGetExporters(t *testing.T) {
	sheet := &roster.ExcelSheet{}

	tests := []struct {
		formats  []string
		expected int
	}{
		{nil, 1},                              // workbook always written
		{[]string{""}, 1},                     // blank format ignored
		{[]string{"word"}, 2},                 // plus docx report
		{[]string{"word", "json"}, 3},         // plus both reports
		{[]string{"json", "JSON", "json"}, 2}, // duplicates collapse
		{[]string{"html"}, 1},                 // unknown format ignored
	}

	for _, tt := range tests {
		got := GetExporters(tt.formats, sheet)
		if len(got) != tt.expected {
			t.Errorf("GetExporters(%v) returned %d exporters, expected %d", tt.formats, len(got), tt.expected)
		}
	}
}
