package cmd

import (
	"github.com/mythster/mythster-JiraSprintDashboard/core"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/iocache"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/jira"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/outwriter"
	"github.com/spf13/cobra"
)

// reportCmd builds the dashboard data for the configured board.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build burn-up series for every sprint and the all-time EV/PV view.",
	Long: `Fetch every sprint of the board, replay issue changelogs and worklogs, and
write the daily cumulative series consumed by the sprint dashboard.

For each included sprint the report holds, per day and per user:
- Earned points (half on start, half on finish)
- Logged hours (actual cost)
- Planned points as they stood that day

Sprints whose name starts with the all-time prefix are also stitched into
one continuous timeline with a ramped planned value line.

Future sprints are skipped, as are sprints matching the exclude pattern.
Closed sprints are cached; active sprints are always fetched.

Examples:
  # Write data.json for the dashboard
  sprintdash report

  # Print a summary table instead
  sprintdash report --output text

  # Replay the board as it stood on a given date
  sprintdash report --today 2024-03-01 --output-file march.json

  # Flat daily rows for analytics tools
  sprintdash report --output parquet --output-file daily.parquet`,
	PreRunE: trackerSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer iocache.CloseStores()
		client := jira.NewClient(cfg, contract.Logger())
		if err := core.ExecuteReport(rootCtx, cfg, client, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot build sprint report", err)
		}
	},
}
