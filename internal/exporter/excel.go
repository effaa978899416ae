package exporter

import (
	"fmt"
	"os"

	"roll-call/internal/config"
	"roll-call/internal/model"
	"roll-call/internal/roster"
)

// ExcelExporter packages the mutated roster workbook. The workbook is
// serialized in memory and written to the output path; the original
// master file on disk is never touched.
type ExcelExporter struct {
	sheet *roster.ExcelSheet
}

// NewExcelExporter creates the workbook packager for a merge run.
func NewExcelExporter(sheet *roster.ExcelSheet) *ExcelExporter {
	return &ExcelExporter{sheet: sheet}
}

// Export writes the updated workbook to cfg.OutputPath().
func (e *ExcelExporter) Export(summary *model.RunSummary, cfg *config.Config) error {
	if err := e.sheet.Err(); err != nil {
		return fmt.Errorf("roster workbook has pending write errors: %w", err)
	}

	buf, err := e.sheet.File().WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to serialize roster workbook: %w", err)
	}

	outputFile := cfg.OutputPath()
	if err := os.WriteFile(outputFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	return nil
}
