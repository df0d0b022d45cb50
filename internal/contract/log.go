package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"golang.org/x/term"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(NewLogger(slog.LevelInfo, os.Stderr, schema.AutoLogFormat))
}

// NewLogger creates a slog.Logger writing to w.
// Console format uses clog for colored output; auto picks console when w is a terminal
// and JSON otherwise.
func NewLogger(level slog.Level, w io.Writer, format schema.LogFormat) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if format == schema.AutoLogFormat || format == "" {
		format = schema.JSONLogFormat
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = schema.ConsoleLogFormat
		}
	}

	var handler slog.Handler
	switch format {
	case schema.ConsoleLogFormat:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
		)
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// ParseLogLevel parses a log level name such as "debug" or "WARN".
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", level)
	}
}

// SetLogger installs the logger used by Logger, LogWarn and LogFatal.
func SetLogger(logger *slog.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// Logger returns the process-wide logger.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}
