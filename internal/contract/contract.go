// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// SprintSource yields the sprint descriptors of a board.
type SprintSource interface {
	// ListSprints returns every sprint on the board in the order the tracker lists them.
	ListSprints(ctx context.Context, boardID int64) ([]schema.Sprint, error)
}

// IssueSource yields the issues of a sprint with their change history and worklogs.
type IssueSource interface {
	// SprintIssues returns every issue in the sprint.
	SprintIssues(ctx context.Context, sprintID int64) ([]schema.Issue, error)
}

// TrackerClient is everything the report pipeline reads from the project tracker.
// This allows the core logic to be tested without a real tracker.
type TrackerClient interface {
	SprintSource
	IssueSource

	// ServerID identifies the tracker instance, for cache keys.
	ServerID() string
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetIssueStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking report runs and their sprint summaries.
type RunStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, totalSprints int) error

	// RecordSprintSummary stores the final figures of one emitted sprint
	RecordSprintSummary(runID int64, summary schema.SprintSummary) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllReportRuns returns every recorded run, oldest first
	GetAllReportRuns() ([]schema.ReportRunRecord, error)

	// GetAllSprintSummaries returns every recorded sprint summary, ordered by run
	GetAllSprintSummaries() ([]schema.SprintSummaryRecord, error)

	// Close closes the underlying connection
	Close() error
}

// ReportWriter emits pipeline results in the configured output format.
type ReportWriter interface {
	WriteReport(report *schema.Report, cfg *Config, duration time.Duration) error
	WriteSprints(listing []schema.SprintListing, cfg *Config) error
}
