package exporter

import (
	"strings"

	"roll-call/internal/exporter/word"
	"roll-call/internal/roster"
)

// GetExporters returns the exporters for a run. The updated roster
// workbook is always written; word/json summary reports are added per
// the requested formats.
func GetExporters(formats []string, sheet *roster.ExcelSheet) []Exporter {
	exporters := []Exporter{NewExcelExporter(sheet)}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "word", "docx":
			exporters = append(exporters, word.NewWordExporter())
		case "json":
			exporters = append(exporters, NewJSONExporter())
		}
	}

	return exporters
}
