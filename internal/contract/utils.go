package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// Color variables for console output.
var (
	OnTrackColor  = color.New(color.FgGreen, color.Bold) // on or ahead of plan
	SlippingColor = color.New(color.FgYellow)            // slightly behind, not bold
	BehindColor   = color.New(color.FgMagenta, color.Bold)
	CriticalColor = color.New(color.FgRed, color.Bold)
)

// GetColorLabel returns a colored schedule label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(ratio float64) string {
	text := schema.GetPlainLabel(ratio)

	switch text {
	case schema.OnTrackValue:
		return OnTrackColor.Sprint(text)
	case schema.SlippingValue:
		return SlippingColor.Sprint(text)
	case schema.BehindValue:
		return BehindColor.Sprint(text)
	default:
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error(msg, "error", err)
	os.Exit(1)
}

// LogWarn logs a warning with its cause.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, "error", err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the issue cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintdash_cache.db"
	}
	return filepath.Join(homeDir, ".sprintdash_cache.db")
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run history.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintdash_runs.db"
	}
	return filepath.Join(homeDir, ".sprintdash_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
