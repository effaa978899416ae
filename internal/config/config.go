package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"roll-call/internal/poll"
)

// Config represents the application configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Lecture  LectureConfig  `mapstructure:"lecture"`
	Presence PresenceConfig `mapstructure:"presence"`
	Names    NamesConfig    `mapstructure:"names"`
	Output   OutputConfig   `mapstructure:"output"`
}

// InputConfig holds the two input artifacts
type InputConfig struct {
	Master string `mapstructure:"master"` // Master roster workbook (xlsx)
	Poll   string `mapstructure:"poll"`   // Poll export (csv or xlsx)
}

// LectureConfig identifies the lecture this run writes into
type LectureConfig struct {
	Number int    `mapstructure:"number"` // Positive lecture number ("Lecture <N>")
	Date   string `mapstructure:"date"`   // Lecture date (e.g. "10-Feb", "2/10/2026")
}

// PresenceConfig selects how a poll row counts as present
type PresenceConfig struct {
	Mode         string `mapstructure:"mode"`          // "blanket" or "substring"
	SearchString string `mapstructure:"search_string"` // Required for substring mode
}

// NamesConfig controls name handling for existing students
type NamesConfig struct {
	Backfill bool `mapstructure:"backfill"` // Fill blank name cells from the poll export
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`         // Output directory
	Suffix     string `mapstructure:"suffix"`      // Appended to the master file stem
	ReportName string `mapstructure:"report_name"` // Stem for the word/json summary reports
}

// Accepted lecture date layouts. Day-month without a year ("10-Feb")
// matches how the roster renders lecture dates; the current year is
// assumed for it.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"2006-01-02",
	"2-Jan-2006",
	"Jan 2, 2006",
	"2-Jan",
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// If the file doesn't exist, it uses sensible defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set sensible defaults
	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}

	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			// Config file not found - flags and defaults carry the run
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Normalize paths
	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	// Create output directory if it doesn't exist
	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.master", "")
	v.SetDefault("input.poll", "")

	v.SetDefault("lecture.number", 1)
	v.SetDefault("lecture.date", "")

	v.SetDefault("presence.mode", string(poll.ModeBlanket))
	v.SetDefault("presence.search_string", "")

	v.SetDefault("names.backfill", true)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.suffix", "_UPDATED")
	v.SetDefault("output.report_name", "attendance-summary")
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	absOutput, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput
	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Mode returns the configured presence mode
func (c *Config) Mode() poll.Mode {
	return poll.Mode(strings.ToLower(strings.TrimSpace(c.Presence.Mode)))
}

// LectureDate parses the configured lecture date
func (c *Config) LectureDate() (time.Time, error) {
	return ParseDate(c.Lecture.Date)
}

// ParseDate parses a date-like value in any of the accepted layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("lecture date is required")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == "2-Jan" {
			now := time.Now()
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized lecture date %q", s)
}

// OutputPath returns the full path for the updated master workbook,
// derived from the master file stem plus the configured suffix
func (c *Config) OutputPath() string {
	stem := strings.TrimSuffix(filepath.Base(c.Input.Master), filepath.Ext(c.Input.Master))
	return filepath.Join(c.Output.Dir, stem+c.Output.Suffix+".xlsx")
}

// ReportPath returns the full path for a summary report with the given extension
func (c *Config) ReportPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.ReportName+"."+strings.TrimPrefix(ext, "."))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Master == "" {
		return fmt.Errorf("input.master is required")
	}
	if _, err := os.Stat(c.Input.Master); os.IsNotExist(err) {
		return fmt.Errorf("input.master does not exist: %s", c.Input.Master)
	}

	if c.Input.Poll == "" {
		return fmt.Errorf("input.poll is required")
	}
	if _, err := os.Stat(c.Input.Poll); os.IsNotExist(err) {
		return fmt.Errorf("input.poll does not exist: %s", c.Input.Poll)
	}

	if c.Lecture.Number < 1 {
		return fmt.Errorf("lecture.number must be a positive integer, got %d", c.Lecture.Number)
	}
	if _, err := c.LectureDate(); err != nil {
		return err
	}

	switch c.Mode() {
	case poll.ModeBlanket:
		// search string ignored
	case poll.ModeSubstring:
		if strings.TrimSpace(c.Presence.SearchString) == "" {
			return fmt.Errorf("presence.search_string is required when presence.mode is %q", poll.ModeSubstring)
		}
	default:
		return fmt.Errorf("presence.mode must be %q or %q, got %q", poll.ModeBlanket, poll.ModeSubstring, c.Presence.Mode)
	}

	if c.Output.ReportName == "" {
		return fmt.Errorf("output.report_name cannot be empty")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Roll Call Configuration ===")
	fmt.Printf("Master Workbook:  %s\n", c.Input.Master)
	fmt.Printf("Poll Export:      %s\n", c.Input.Poll)
	fmt.Printf("Lecture:          %d (%s)\n", c.Lecture.Number, c.Lecture.Date)
	fmt.Printf("Presence Mode:    %s\n", c.Presence.Mode)
	if c.Mode() == poll.ModeSubstring {
		fmt.Printf("Search String:    %s\n", c.Presence.SearchString)
	}
	fmt.Printf("Backfill Names:   %v\n", c.Names.Backfill)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Output Workbook:  %s\n", c.OutputPath())
	fmt.Println("===============================")
}
