// Package word renders the run summary as a Word document, for
// instructors who file a per-lecture record alongside the roster.
package word

import (
	"embed"
	"fmt"
	"os"

	"roll-call/internal/config"
	"roll-call/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(summary *model.RunSummary, cfg *config.Config) error {
	// The docx library opens from a path, so the embedded template goes
	// through a temp file first.
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "roll-call-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	columnNote := "existing"
	if summary.CreatedColumn {
		columnNote = "created"
	}

	doc.Replace("{{Date}}", summary.RunDate, -1)
	doc.Replace("{{Lecture}}", summary.LectureLabel, -1)
	doc.Replace("{{LectureDate}}", summary.LectureDate, -1)
	doc.Replace("{{Mode}}", summary.PresenceMode, -1)
	doc.Replace("{{Master}}", summary.MasterFile, -1)
	doc.Replace("{{Poll}}", summary.PollFile, -1)
	doc.Replace("{{Output}}", summary.OutputFile, -1)
	doc.Replace("{{Column}}", columnNote, -1)
	doc.Replace("{{Listed}}", fmt.Sprintf("%d", summary.PollListed), -1)
	doc.Replace("{{Present}}", fmt.Sprintf("%d", summary.PresentMarked), -1)
	doc.Replace("{{Zeros}}", fmt.Sprintf("%d", summary.ZerosWritten), -1)
	doc.Replace("{{Appended}}", fmt.Sprintf("%d", summary.Appended), -1)
	doc.Replace("{{Backfilled}}", fmt.Sprintf("%d", summary.Backfilled), -1)
	doc.Replace("{{Skipped}}", fmt.Sprintf("%d", summary.SkippedInvalid), -1)

	outputPath := cfg.ReportPath("docx")
	if err := doc.WriteToFile(outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return nil
}
