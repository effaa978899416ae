package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roll-call/internal/config"
	"roll-call/internal/exporter"
	"roll-call/internal/logger"
	"roll-call/internal/merge"
	"roll-call/internal/model"
	"roll-call/internal/poll"
	"roll-call/internal/roster"
	"roll-call/internal/ui"
)

const (
	appName    = "Roll Call"
	appVersion = "1.0.0"
	appDesc    = "Surgically merges polling-tool attendance exports into a master roster workbook"
)

var (
	configPath  string
	verbose     bool
	showVersion bool

	masterPath  string
	pollPath    string
	lectureNum  int
	lectureDate string
	presMode    string
	searchStr   string
	outputDir   string
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.StringVar(&masterPath, "master", "", "Master roster workbook (xlsx), overrides config")
	flag.StringVar(&pollPath, "poll", "", "Poll export (csv or xlsx), overrides config")
	flag.IntVar(&lectureNum, "lecture", 0, "Lecture number, overrides config")
	flag.StringVar(&lectureDate, "date", "", "Lecture date (e.g. 10-Feb), overrides config")
	flag.StringVar(&presMode, "mode", "", "Presence mode: blanket or substring, overrides config")
	flag.StringVar(&searchStr, "search", "", "Header search string for substring mode, overrides config")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated summary report formats (word,json)")
}

func main() {
	// CRITICAL: Ensure "Press Enter to Exit" runs even on panic or error
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		waitForEnter()
	}()

	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	// 1. Initialize
	logger.Info("Loading configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}

	logPath := filepath.Join(cfg.Output.Dir, "roll_call.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	summary, err := runMerge(cfg)
	if err != nil {
		logger.Error("Merge failed: %v", err)
		return 1
	}

	logger.Info("✅ %s: present=1 for %d students, absent=0 for %d blank cells, %d appended, %d name cells backfilled.",
		summary.LectureLabel, summary.PresentMarked, summary.ZerosWritten, summary.Appended, summary.Backfilled)
	logger.Info("Updated roster written to [%s].", summary.OutputFile)
	return 0
}

// applyFlagOverrides lets CLI flags win over config file values
func applyFlagOverrides(cfg *config.Config) {
	if masterPath != "" {
		cfg.Input.Master = masterPath
	}
	if pollPath != "" {
		cfg.Input.Poll = pollPath
	}
	if lectureNum > 0 {
		cfg.Lecture.Number = lectureNum
	}
	if lectureDate != "" {
		cfg.Lecture.Date = lectureDate
	}
	if presMode != "" {
		cfg.Presence.Mode = presMode
	}
	if searchStr != "" {
		cfg.Presence.SearchString = searchStr
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
		cfg.EnsureOutputDir()
	}
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func runMerge(cfg *config.Config) (*model.RunSummary, error) {
	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseReading,
		ui.PhaseMerging,
		ui.PhaseGenerating,
	})

	date, err := cfg.LectureDate()
	if err != nil {
		return nil, err
	}

	// --- Phase 1: Reading ---
	logger.Info("Phase 1: Reading inputs...")
	readBar := pipeline.NextPhase(3)

	ds, err := poll.ReadDataset(cfg.Input.Poll)
	if err != nil {
		return nil, err
	}
	readBar.Increment()

	presence, err := poll.ExtractPresence(ds, cfg.Mode(), cfg.Presence.SearchString)
	if err != nil {
		return nil, err
	}
	logger.Debug("Presence set: %d identifiers, %d rows skipped", presence.Size(), presence.SkippedInvalid)
	readBar.Increment()

	sheet, err := roster.OpenExcel(cfg.Input.Master)
	if err != nil {
		return nil, err
	}
	defer sheet.Close()
	readBar.Increment()
	readBar.Finish()

	// --- Phase 2: Merging ---
	logger.Info("Phase 2: Merging attendance...")
	mergeBar := pipeline.NextPhase(4)

	cols, err := roster.LocateColumns(sheet)
	if err != nil {
		return nil, err
	}
	mergeBar.Increment()

	lectureCol, created, err := roster.ResolveLectureColumn(sheet, cols, cfg.Lecture.Number, date)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Debug("Created lecture column at index %d", lectureCol)
	}
	mergeBar.Increment()

	outcome := merge.Merge(sheet, cols, lectureCol, presence)
	appended := merge.AppendMissing(sheet, cols, lectureCol, presence, outcome)
	mergeBar.Increment()

	backfilled := 0
	if cfg.Names.Backfill {
		backfilled = merge.BackfillNames(sheet, cols, presence, outcome)
	}
	mergeBar.Increment()
	mergeBar.Finish()

	summary := buildSummary(cfg, presence, outcome, appended, backfilled, created, date)

	// --- Phase 3: Generating ---
	logger.Info("Phase 3: Writing output...")
	targetFormats := strings.Split(formats, ",")
	exporters := exporter.GetExporters(targetFormats, sheet)

	genBar := pipeline.NextPhase(len(exporters))

	for _, exp := range exporters {
		if err := exp.Export(summary, cfg); err != nil {
			return nil, err
		}
		genBar.Increment()
	}
	genBar.Finish()

	pipeline.Finish()

	return summary, nil
}

func buildSummary(cfg *config.Config, presence *poll.PresenceSet, outcome *merge.Outcome,
	appended, backfilled int, created bool, date time.Time) *model.RunSummary {
	return &model.RunSummary{
		RunDate:        time.Now().Format("2006-01-02"),
		MasterFile:     cfg.Input.Master,
		PollFile:       cfg.Input.Poll,
		OutputFile:     cfg.OutputPath(),
		LectureLabel:   roster.LectureLabel(cfg.Lecture.Number),
		LectureDate:    date.Format("Jan 2, 2006"),
		PresenceMode:   string(cfg.Mode()),
		CreatedColumn:  created,
		PollListed:     presence.Size(),
		PresentMarked:  outcome.PresentMarked,
		ZerosWritten:   outcome.ZerosWritten,
		Appended:       appended,
		Backfilled:     backfilled,
		SkippedInvalid: outcome.SkippedInvalid + presence.SkippedInvalid,
	}
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      ROLL CALL v1.0.0                     ║
║      Poll-to-Roster Attendance Merge for Instructors      ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
