package exporter

import (
	"roll-call/internal/config"
	"roll-call/internal/model"
)

// Exporter is the unified interface for all run artifacts: the updated
// roster workbook and the optional summary reports.
type Exporter interface {
	Export(summary *model.RunSummary, cfg *config.Config) error
}
