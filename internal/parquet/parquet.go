// Package parquet provides data structures and functions for exporting sprint
// reports and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun maps to the sprintdash_report_runs table.
type ReportRun struct {
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is stored as TIMESTAMP with nanosecond precision
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is nil for runs that never finished
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalSprints  int32      `parquet:"total_sprints,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SprintSummary maps to the sprintdash_sprint_summaries table.
type SprintSummary struct {
	RunID        int64     `parquet:"run_id,snappy"`
	SprintName   string    `parquet:"sprint_name,snappy,dict"`
	SprintState  string    `parquet:"sprint_state,snappy,dict"`
	StartDate    time.Time `parquet:"start_date,snappy"`
	EndDate      time.Time `parquet:"end_date,snappy"`
	Planned      float64   `parquet:"planned,snappy"`
	FinalEarned  float64   `parquet:"final_earned,snappy"`
	FinalCost    float64   `parquet:"final_cost,snappy"`
	UserCount    int32     `parquet:"user_count,snappy"`
	RecordedTime time.Time `parquet:"recorded_time,snappy"`
}

// DailyPoint is one (view, entity, date) value of a report.
// Null columns are future dates or series the view does not carry.
type DailyPoint struct {
	View    string   `parquet:"view,snappy,dict"`
	Entity  string   `parquet:"entity,snappy,dict"`
	Date    string   `parquet:"date,snappy"`
	Earned  *float64 `parquet:"earned,optional,snappy"`
	Cost    *float64 `parquet:"cost,optional,snappy"`
	Planned *float64 `parquet:"planned,optional,snappy"`
}

// writeParquet writes rows to a new file at outputPath using the schema
// derived from the struct tags of T.
func writeParquet[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row groups and the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteReportRunsParquet writes report runs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSprintSummariesParquet writes sprint summaries to a Parquet file.
func WriteSprintSummariesParquet(data []SprintSummary, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailyPointsParquet writes flattened report values to a Parquet file.
func WriteDailyPointsParquet(data []DailyPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalSprints:  record.TotalSprints,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSprintSummaryRecords converts schema.SprintSummaryRecord to SprintSummary for Parquet export.
func ConvertSprintSummaryRecords(records []schema.SprintSummaryRecord) []SprintSummary {
	result := make([]SprintSummary, len(records))
	for i, record := range records {
		result[i] = SprintSummary{
			RunID:        record.RunID,
			SprintName:   record.SprintName,
			SprintState:  record.SprintState,
			StartDate:    record.StartDate,
			EndDate:      record.EndDate,
			Planned:      record.Planned,
			FinalEarned:  record.FinalEarned,
			FinalCost:    record.FinalCost,
			UserCount:    record.UserCount,
			RecordedTime: record.RecordedTime,
		}
	}
	return result
}

// ConvertDailyRows converts flattened report rows for Parquet export.
func ConvertDailyRows(rows []schema.DailyRow) []DailyPoint {
	result := make([]DailyPoint, len(rows))
	for i, row := range rows {
		result[i] = DailyPoint{
			View:    row.View,
			Entity:  row.Entity,
			Date:    row.Date,
			Earned:  row.Earned,
			Cost:    row.Cost,
			Planned: row.Planned,
		}
	}
	return result
}
