// Package core runs the sprint report pipeline: it selects sprints, builds
// their burn-up series and stitches the all-time views.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/schollz/progressbar/v3"
)

// ExecuteReport builds the report and hands it to the writer.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager, writer contract.ReportWriter) error {
	start := time.Now()
	report, err := BuildReport(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return writer.WriteReport(report, cfg, time.Since(start))
}

// ExecuteSprints lists the board's sprints with the verdict a report run would give them.
func ExecuteSprints(ctx context.Context, cfg *contract.Config, client contract.SprintSource, writer contract.ReportWriter) error {
	sprints, err := client.ListSprints(ctx, cfg.BoardID)
	if err != nil {
		return fmt.Errorf("error finding sprints: %w", err)
	}
	return writer.WriteSprints(NewSelection(cfg).Listing(sprints), cfg)
}

// BuildReport fetches every selected sprint, builds its series and stitches
// the all-time views. A sprint that cannot be fetched or has invalid dates is
// skipped with a warning; only cancellation or a failed sprint listing abort the run.
func BuildReport(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) (*schema.Report, error) {
	logger := contract.Logger()

	sprints, err := client.ListSprints(ctx, cfg.BoardID)
	if err != nil {
		return nil, fmt.Errorf("error finding sprints: %w", err)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	var runs contract.RunStore
	if mgr != nil {
		runs = mgr.GetRunStore()
	}
	if runs != nil {
		runID, err = runs.BeginRun(time.Now(), cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	selection := NewSelection(cfg)
	bar := newProgressBar(cfg, len(sprints))
	report := &schema.Report{}
	var details []schema.SprintDetail

	// --- 1. Per-sprint series ---
	for _, sprint := range sprints {
		_ = bar.Add(1)
		switch selection.Verdict(sprint) {
		case schema.FutureVerdict:
			continue
		case schema.ExcludedVerdict:
			logger.Info("Skipping sprint", "sprint", sprint.Name, "pattern", cfg.ExcludePattern)
			continue
		}
		logger.Info("Processing sprint", "sprint", sprint.Name, "id", sprint.ID, "state", sprint.State)

		issues, err := CachedSprintIssues(ctx, cfg, client, mgr, sprint)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			contract.LogWarn(fmt.Sprintf("Skipping sprint %q, issues could not be fetched", sprint.Name), err)
			continue
		}

		series, detail, err := BuildSprintSeries(sprint, issues, cfg.Today)
		if err != nil {
			logger.Warn("Skipping sprint", "sprint", sprint.Name, "error", err)
			continue
		}
		report.Sprints = append(report.Sprints, series)
		if selection.FeedsAllTime(sprint) {
			details = append(details, detail)
		}
		recordSummary(runs, runID, series, detail)
	}
	_ = bar.Finish()

	// --- 2. All-time stitching ---
	report.AllTime, report.EVPV = StitchAllTime(details, cfg.AllTimePrefix, cfg.Today)
	if report.AllTime == nil {
		logger.Debug("No sprint qualifies for the all-time views", "prefix", cfg.AllTimePrefix)
	}

	// --- 3. End Run Tracking ---
	if runs != nil && runID > 0 {
		if err := runs.EndRun(runID, time.Now(), len(report.Sprints)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}
	return report, nil
}

// recordSummary stores the end figures of an emitted sprint in the run history.
func recordSummary(runs contract.RunStore, runID int64, series schema.SprintSeries, detail schema.SprintDetail) {
	if runs == nil || runID <= 0 {
		return
	}
	overall := series.Charts[schema.OverallEntity]
	summary := schema.SprintSummary{
		SprintName:   series.Name,
		State:        series.State,
		StartDate:    detail.Start,
		EndDate:      detail.End,
		Planned:      schema.Round2(detail.Planned),
		FinalEarned:  schema.LastValue(overall.EarnedHours),
		FinalCost:    schema.LastValue(overall.ActualCost),
		UserCount:    len(series.Users),
		RecordedTime: time.Now(),
	}
	if err := runs.RecordSprintSummary(runID, summary); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to record summary of sprint %q", series.Name), err)
	}
}

// newProgressBar returns a sprint counter on stderr, or a silent one when
// progress display is off.
func newProgressBar(cfg *contract.Config, total int) *progressbar.ProgressBar {
	var w io.Writer = io.Discard
	if cfg.ShowProgress {
		w = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("sprints"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
