package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/iocache"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager = iocache.Manager

// legacyEnv maps config keys to the environment names the dashboard scripts used.
var legacyEnv = map[string]string{
	"jira-server": "JIRA_SERVER",
	"jira-email":  "JIRA_EMAIL",
	"api-token":   "API_TOKEN",
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "sprintdash",
	Short:              "Build sprint burn-up and EV/PV data from a Jira board.",
	Long:               `Sprintdash replays Jira changelogs and worklogs into daily cumulative series for every sprint, plus an all-time earned value view.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in the .env file and ENV variables if set.
func initConfig() {
	// A missing .env is fine; the values may come from the real environment.
	_ = godotenv.Load()

	// Set environment variable prefix
	viper.SetEnvPrefix("SPRINTDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match
	for key, legacy := range legacyEnv {
		_ = viper.BindEnv(key, "SPRINTDASH_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")), legacy)
	}

	// Set defaults in Viper
	viper.SetDefault("board-id", contract.DefaultBoardID)
	viper.SetDefault("story-points-field", contract.DefaultStoryPointsField)
	viper.SetDefault("story-points-label", contract.DefaultStoryPointsLabel)
	viper.SetDefault("max-results", contract.DefaultMaxResults)
	viper.SetDefault("exclude-pattern", contract.DefaultExcludePattern)
	viper.SetDefault("all-time-prefix", contract.DefaultAllTimePrefix)
	viper.SetDefault("output", schema.JSONOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("runs-backend", schema.NoneBackend)
	viper.SetDefault("runs-db-connect", "")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", schema.AutoLogFormat)
	viper.SetDefault("color", "yes")
	viper.SetDefault("progress", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input, time.Now()); err != nil {
		return err
	}
	contract.SetLogger(contract.NewLogger(cfg.LogLevel, os.Stderr, cfg.LogFormat))

	// 4. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// trackerSetupWrapper runs sharedSetup and then insists on Jira credentials.
func trackerSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	return cfg.ValidateCredentials()
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".sprintdash") // Name of config file (without extension)
		viper.SetConfigType("yaml")        // We'll use YAML format
		viper.AddConfigPath(".")           // Look in the current directory
		viper.AddConfigPath("$HOME")       // Look in the home directory
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
