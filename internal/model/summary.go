// Package model holds the shared result types exporters consume.
package model

// RunSummary captures what a single merge run did. It feeds the console
// message and the word/json report exporters.
type RunSummary struct {
	RunDate      string `json:"run_date"`
	MasterFile   string `json:"master_file"`
	PollFile     string `json:"poll_file"`
	OutputFile   string `json:"output_file"`
	LectureLabel string `json:"lecture_label"`
	LectureDate  string `json:"lecture_date"`
	PresenceMode string `json:"presence_mode"`

	CreatedColumn  bool `json:"created_column"`
	PollListed     int  `json:"poll_listed"`
	PresentMarked  int  `json:"present_marked"`
	ZerosWritten   int  `json:"zeros_written"`
	Appended       int  `json:"appended"`
	Backfilled     int  `json:"backfilled_name_cells"`
	SkippedInvalid int  `json:"skipped_invalid_rows"`
}
