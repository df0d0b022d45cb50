package contract

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// Default values for configuration.
const (
	DefaultBoardID          = 1
	DefaultStoryPointsField = "customfield_10016"
	DefaultStoryPointsLabel = "Story Points"
	DefaultMaxResults       = 200
	MaxMaxResults           = 1000
	DefaultExcludePattern   = "SCRUM"
	DefaultAllTimePrefix    = "Sprint "
	DefaultOutputFile       = "data.json"
	DefaultPrecision        = 2
)

// ErrMissingCredentials is returned when a command needs Jira but the
// server, email or API token is not configured.
var ErrMissingCredentials = errors.New("one or more of jira-server, jira-email, api-token is missing")

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	JiraServer string
	JiraEmail  string
	APIToken   string // Please use env var or .env as this is plaintext

	BoardID          int64
	StoryPointsField string
	StoryPointsLabel string
	MaxResults       int

	Today          time.Time // UTC date that separates past from future
	TodayFixed     bool      // Today came from --today and must not follow the clock
	ExcludePattern string
	AllTimePrefix  string

	Output     schema.OutputMode
	OutputFile string
	Precision  int

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	LogLevel  slog.Level
	LogFormat schema.LogFormat

	UseColors    bool // Enable colored labels in table output
	ShowProgress bool // Show a progress bar while sprints are fetched
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, .env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Tracker connection ---
	JiraServer string `mapstructure:"jira-server"`
	JiraEmail  string `mapstructure:"jira-email"`
	APIToken   string `mapstructure:"api-token"`

	// --- Board and field layout ---
	BoardID          int64  `mapstructure:"board-id"`
	StoryPointsField string `mapstructure:"story-points-field"`
	StoryPointsLabel string `mapstructure:"story-points-label"`
	MaxResults       int    `mapstructure:"max-results"`

	// --- Report selection ---
	Today          string `mapstructure:"today"`
	ExcludePattern string `mapstructure:"exclude-pattern"`
	AllTimePrefix  string `mapstructure:"all-time-prefix"`

	// --- Output ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`

	// --- Storage ---
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	// --- Presentation ---
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Color     string `mapstructure:"color"`
	Progress  string `mapstructure:"progress"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. now anchors the default reference date.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateTrackerInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSelectionInputs(cfg, input, now); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return validatePresentationInputs(cfg, input)
}

// ValidateCredentials reports whether everything needed to reach Jira is set.
// Commands that only touch local stores can skip it.
func (c *Config) ValidateCredentials() error {
	var missing []string
	if c.JiraServer == "" {
		missing = append(missing, "jira-server (JIRA_SERVER)")
	}
	if c.JiraEmail == "" {
		missing = append(missing, "jira-email (JIRA_EMAIL)")
	}
	if c.APIToken == "" {
		missing = append(missing, "api-token (API_TOKEN)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s in the environment or a .env file", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// ConfigParams returns the non-secret settings recorded with each report run.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"jira_server":     c.JiraServer,
		"board_id":        c.BoardID,
		"today":           c.Today.Format(schema.DateLayout),
		"exclude_pattern": c.ExcludePattern,
		"all_time_prefix": c.AllTimePrefix,
		"output":          string(c.Output),
	}
}

// validateTrackerInputs handles the Jira connection and field layout.
func validateTrackerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.JiraServer = strings.TrimRight(strings.TrimSpace(input.JiraServer), "/")
	cfg.JiraEmail = strings.TrimSpace(input.JiraEmail)
	cfg.APIToken = strings.TrimSpace(input.APIToken)

	if cfg.JiraServer != "" {
		u, err := url.Parse(cfg.JiraServer)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid jira-server '%s'. must be an absolute URL such as https://example.atlassian.net", input.JiraServer)
		}
	}

	if input.BoardID <= 0 {
		return fmt.Errorf("board-id must be greater than 0 (received %d)", input.BoardID)
	}
	cfg.BoardID = input.BoardID

	cfg.StoryPointsField = strings.TrimSpace(input.StoryPointsField)
	if cfg.StoryPointsField == "" {
		cfg.StoryPointsField = DefaultStoryPointsField
	}
	cfg.StoryPointsLabel = strings.TrimSpace(input.StoryPointsLabel)
	if cfg.StoryPointsLabel == "" {
		cfg.StoryPointsLabel = DefaultStoryPointsLabel
	}

	if input.MaxResults <= 0 || input.MaxResults > MaxMaxResults {
		return fmt.Errorf("max-results must be greater than 0 and cannot exceed %d (received %d)", MaxMaxResults, input.MaxResults)
	}
	cfg.MaxResults = input.MaxResults
	return nil
}

// validateSelectionInputs handles the reference date and sprint selection rules.
func validateSelectionInputs(cfg *Config, input *ConfigRawInput, now time.Time) error {
	today, err := ParseToday(input.Today, now)
	if err != nil {
		return err
	}
	cfg.Today = today
	cfg.TodayFixed = strings.TrimSpace(input.Today) != ""

	// An empty pattern disables exclusion; the prefix is used verbatim, trailing space included.
	cfg.ExcludePattern = strings.TrimSpace(input.ExcludePattern)
	cfg.AllTimePrefix = input.AllTimePrefix
	return nil
}

// validateOutputInputs handles the output format, file and precision.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be json, csv, text, parquet", input.Output)
	}

	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", schema.ParquetOut)
	}

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision
	return nil
}

// validatePresentationInputs handles logging, color and progress flags.
func validatePresentationInputs(cfg *Config, input *ConfigRawInput) error {
	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.LogFormat = schema.LogFormat(strings.ToLower(input.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = schema.AutoLogFormat
	}
	if _, ok := schema.ValidLogFormats[cfg.LogFormat]; !ok {
		return fmt.Errorf("invalid log format '%s'. must be auto, console, json", input.LogFormat)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	progress, err := ParseBoolString(input.Progress)
	if err != nil {
		return fmt.Errorf("invalid --progress value: %w", err)
	}
	cfg.ShowProgress = progress
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Run History Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("runs-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		runsPath := cfg.RunsDBConnect
		if runsPath == "" {
			runsPath = GetRunsDBFilePath()
		}
		if cachePath == runsPath {
			return fmt.Errorf("cache and run history must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}
