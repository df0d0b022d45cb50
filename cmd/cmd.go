// Package cmd defines the command-line interface for sprintdash.
package cmd

import (
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sprintsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("jira-server", "", "Jira Cloud base URL, e.g. https://example.atlassian.net (env JIRA_SERVER)")
	rootCmd.PersistentFlags().String("jira-email", "", "Account email used for basic auth (env JIRA_EMAIL)")
	rootCmd.PersistentFlags().Int64("board-id", contract.DefaultBoardID, "Agile board to read sprints from")
	rootCmd.PersistentFlags().String("story-points-field", contract.DefaultStoryPointsField, "Custom field id holding story points")
	rootCmd.PersistentFlags().String("story-points-label", contract.DefaultStoryPointsLabel, "Changelog field name of story point edits")
	rootCmd.PersistentFlags().Int("max-results", contract.DefaultMaxResults, "Page size for issue searches")
	rootCmd.PersistentFlags().String("today", "", "Reference date as YYYY-MM-DD (default: current UTC date)")
	rootCmd.PersistentFlags().String("exclude-pattern", contract.DefaultExcludePattern, "Skip sprints whose name contains this text (case-insensitive, empty disables)")
	rootCmd.PersistentFlags().String("all-time-prefix", contract.DefaultAllTimePrefix, "Name prefix of sprints stitched into the all-time views")
	rootCmd.PersistentFlags().String("output", string(schema.JSONOut), "Output format: json or csv or text or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to (json defaults to "+contract.DefaultOutputFile+")")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", string(schema.AutoLogFormat), "Log format: auto or console or json")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("progress", "yes", "Show a progress bar while sprints are fetched (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
