package contract

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)

// validInput returns the raw input produced by the default flag values.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		JiraServer:     "https://example.atlassian.net/",
		JiraEmail:      "ana@example.com",
		APIToken:       "token",
		BoardID:        DefaultBoardID,
		MaxResults:     DefaultMaxResults,
		ExcludePattern: DefaultExcludePattern,
		AllTimePrefix:  DefaultAllTimePrefix,
		Output:         string(schema.JSONOut),
		Precision:      DefaultPrecision,
		CacheBackend:   string(schema.SQLiteBackend),
		CacheDBConnect: "/tmp/cache.db",
		RunsBackend:    string(schema.SQLiteBackend),
		RunsDBConnect:  "/tmp/runs.db",
		LogLevel:       "info",
		LogFormat:      "auto",
		Color:          "yes",
		Progress:       "no",
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(), fixedNow))

	assert.Equal(t, "https://example.atlassian.net", cfg.JiraServer)
	assert.Equal(t, int64(1), cfg.BoardID)
	assert.Equal(t, DefaultStoryPointsField, cfg.StoryPointsField)
	assert.Equal(t, DefaultStoryPointsLabel, cfg.StoryPointsLabel)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), cfg.Today)
	assert.False(t, cfg.TodayFixed)
	assert.Equal(t, "Sprint ", cfg.AllTimePrefix)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.ShowProgress)
	assert.NoError(t, cfg.ValidateCredentials())
}

func TestProcessAndValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"relative server", func(in *ConfigRawInput) { in.JiraServer = "example.atlassian.net" }},
		{"zero board", func(in *ConfigRawInput) { in.BoardID = 0 }},
		{"max results too large", func(in *ConfigRawInput) { in.MaxResults = MaxMaxResults + 1 }},
		{"bad today", func(in *ConfigRawInput) { in.Today = "tomorrow" }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 3 }},
		{"bad cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }},
		{"mysql without dsn", func(in *ConfigRawInput) { in.RunsBackend = "mysql"; in.RunsDBConnect = "" }},
		{"postgres without host", func(in *ConfigRawInput) { in.CacheBackend = "postgresql"; in.CacheDBConnect = "dbname=x" }},
		{"same sqlite file", func(in *ConfigRawInput) { in.RunsDBConnect = in.CacheDBConnect }},
		{"bad log level", func(in *ConfigRawInput) { in.LogLevel = "trace" }},
		{"bad log format", func(in *ConfigRawInput) { in.LogFormat = "xml" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "sometimes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input, fixedNow))
		})
	}
}

func TestProcessAndValidate_TodayOverride(t *testing.T) {
	input := validInput()
	input.Today = "2023-12-24"
	input.Output = "parquet"
	input.OutputFile = filepath.Join(t.TempDir(), "report.parquet")

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, fixedNow))

	assert.Equal(t, "2023-12-24", cfg.Today.Format(schema.DateLayout))
	assert.True(t, cfg.TodayFixed)
	assert.Equal(t, schema.ParquetOut, cfg.Output)
	assert.Equal(t, "2023-12-24", cfg.ConfigParams()["today"])
}

func TestValidateCredentials(t *testing.T) {
	cfg := &Config{JiraServer: "https://example.atlassian.net"}

	err := cfg.ValidateCredentials()

	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Contains(t, err.Error(), "JIRA_EMAIL")
	assert.Contains(t, err.Error(), "API_TOKEN")
	assert.NotContains(t, err.Error(), "JIRA_SERVER")
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/sprintdash"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=sprintdash"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}
