package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"roll-call/internal/config"
	"roll-call/internal/model"
)

// JSONExporter writes the run summary as a machine-readable report, for
// scripting around the tool.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(summary *model.RunSummary, cfg *config.Config) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	path := cfg.ReportPath("json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
