package schema

import "time"

// SprintSummary is the end-of-sprint snapshot recorded for every emitted sprint.
type SprintSummary struct {
	SprintName   string
	State        SprintState
	StartDate    time.Time
	EndDate      time.Time
	Planned      float64
	FinalEarned  float64
	FinalCost    float64
	UserCount    int
	RecordedTime time.Time
}

// ReportRunRecord represents a row from the sprintdash_report_runs table.
type ReportRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalSprints  int32
	ConfigParams  *string
}

// SprintSummaryRecord represents a row from the sprintdash_sprint_summaries table.
type SprintSummaryRecord struct {
	RunID        int64
	SprintName   string
	SprintState  string
	StartDate    time.Time
	EndDate      time.Time
	Planned      float64
	FinalEarned  float64
	FinalCost    float64
	UserCount    int32
	RecordedTime time.Time
}

// DailyRow is one flattened (view, entity, date) point of a report.
// Nil values are dates that have not happened yet, or series the view lacks.
type DailyRow struct {
	View    string
	Entity  string
	Date    string
	Earned  *float64
	Cost    *float64
	Planned *float64
}
