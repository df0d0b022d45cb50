package iocache

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/parquet"
)

// ExportRuns writes the run history in store to two Parquet files derived
// from outputFile and reports progress to w.
func ExportRuns(store contract.RunStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run history is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total report runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total sprint summaries: %d\n", status.TableSizes[sprintSummariesTable])

	runs, err := store.GetAllReportRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}
	summaries, err := store.GetAllSprintSummaries()
	if err != nil {
		return fmt.Errorf("failed to retrieve sprint summaries: %w", err)
	}

	base := strings.TrimSuffix(outputFile, ".parquet")

	runsFile := base + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquet.ConvertReportRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report runs to: %s\n", len(runs), runsFile)

	summariesFile := base + ".sprint_summaries.parquet"
	if err := parquet.WriteSprintSummariesParquet(parquet.ConvertSprintSummaryRecords(summaries), summariesFile); err != nil {
		return fmt.Errorf("failed to write sprint summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d sprint summaries to: %s\n", len(summaries), summariesFile)
	return nil
}
