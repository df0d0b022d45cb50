package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// Table names for run history.
const (
	reportRunsTable      = "sprintdash_report_runs"
	sprintSummariesTable = "sprintdash_sprint_summaries"
)

// RunStoreImpl records report runs and the sprint summaries they produced.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore migrates the run history schema to the latest version and opens
// the store. The none backend yields a store that records nothing.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (*RunStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &RunStoreImpl{backend: backend}, nil
	}
	if err := migrateUp(backend, connStr); err != nil {
		return nil, err
	}
	db, err := openDatabase(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}
	return &RunStoreImpl{db: db, backend: backend}, nil
}

// BeginRun creates a new report run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(reportRunsTable, rs.backend)
	values := strings.Join(placeholders(rs.backend, 2), ", ")
	args := []any{formatTime(startTime, rs.backend), string(configJSON)}

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s) RETURNING run_id`, quotedTableName, values)
		err = rs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (%s)`, quotedTableName, values)
		var result sql.Result
		result, err = rs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert report run: %w", err)
	}
	return runID, nil
}

// EndRun updates the report run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalSprints int) error {
	if rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(reportRunsTable, rs.backend)
	ph := placeholders(rs.backend, 4)

	start := &timeScanner{backend: rs.backend}
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, ph[0])
	if err := rs.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	var durationMs int64
	if startTime != nil {
		durationMs = endTime.Sub(*startTime).Milliseconds()
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_sprints = %s WHERE run_id = %s`,
		quotedTableName, ph[0], ph[1], ph[2], ph[3])
	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, totalSprints, runID); err != nil {
		return fmt.Errorf("failed to update report run: %w", err)
	}
	return nil
}

// RecordSprintSummary stores the final figures of one sprint of a run.
func (rs *RunStoreImpl) RecordSprintSummary(runID int64, summary schema.SprintSummary) error {
	if rs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, sprint_name, sprint_state, start_date, end_date,
		                planned, final_earned, final_cost, user_count, recorded_time)
		VALUES (%s)
	`, quoteTableName(sprintSummariesTable, rs.backend), strings.Join(placeholders(rs.backend, 10), ", "))

	_, err := rs.db.Exec(query,
		runID, summary.SprintName, string(summary.State),
		formatTime(summary.StartDate, rs.backend), formatTime(summary.EndDate, rs.backend),
		summary.Planned, summary.FinalEarned, summary.FinalCost, summary.UserCount,
		formatTime(summary.RecordedTime, rs.backend),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sprint summary: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if rs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(reportRunsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := &timeScanner{backend: rs.backend}
		lastQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := rs.db.QueryRow(lastQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		if t, err := last.value(); err != nil {
			return status, err
		} else if t != nil {
			status.LastRunTime = *t
		}

		oldest := &timeScanner{backend: rs.backend}
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		if err := rs.db.QueryRow(oldestQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if t, err := oldest.value(); err != nil {
			return status, err
		} else if t != nil {
			status.OldestRunTime = *t
		}

		sprintsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_sprints), 0) FROM %s", runsTable)
		if err := rs.db.QueryRow(sprintsQuery).Scan(&status.TotalSprints); err != nil {
			return status, fmt.Errorf("failed to get total sprints: %w", err)
		}
	}

	for _, table := range []string{reportRunsTable, sprintSummariesTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllReportRuns retrieves all report runs from the store.
func (rs *RunStoreImpl) GetAllReportRuns() ([]schema.ReportRunRecord, error) {
	if rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_sprints, config_params FROM %s ORDER BY run_id",
		quoteTableName(reportRunsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRunRecord
	for rows.Next() {
		var record schema.ReportRunRecord
		start := &timeScanner{backend: rs.backend}
		end := &timeScanner{backend: rs.backend}
		if err := rows.Scan(&record.RunID, start.dest(), end.dest(), &record.RunDurationMs, &record.TotalSprints, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			record.StartTime = *startTime
		}
		if record.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}
	return results, nil
}

// GetAllSprintSummaries retrieves all sprint summaries from the store.
func (rs *RunStoreImpl) GetAllSprintSummaries() ([]schema.SprintSummaryRecord, error) {
	if rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, sprint_name, sprint_state, start_date, end_date,
		planned, final_earned, final_cost, user_count, recorded_time
		FROM %s ORDER BY run_id, sprint_name`, quoteTableName(sprintSummariesTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprint summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SprintSummaryRecord
	for rows.Next() {
		var record schema.SprintSummaryRecord
		times := []*timeScanner{{backend: rs.backend}, {backend: rs.backend}, {backend: rs.backend}}
		if err := rows.Scan(&record.RunID, &record.SprintName, &record.SprintState,
			times[0].dest(), times[1].dest(),
			&record.Planned, &record.FinalEarned, &record.FinalCost, &record.UserCount,
			times[2].dest()); err != nil {
			return nil, fmt.Errorf("failed to scan sprint summary: %w", err)
		}
		for i, target := range []*time.Time{&record.StartDate, &record.EndDate, &record.RecordedTime} {
			t, err := times[i].value()
			if err != nil {
				return nil, err
			}
			if t != nil {
				*target = *t
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sprint summaries: %w", err)
	}
	return results, nil
}
