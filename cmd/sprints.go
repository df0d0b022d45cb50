package cmd

import (
	"github.com/mythster/mythster-JiraSprintDashboard/core"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/jira"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/outwriter"
	"github.com/spf13/cobra"
)

// sprintsCmd lists the sprints of the board and whether a report includes them.
var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List the board's sprints with their selection verdict.",
	Long: `List every sprint of the board in tracker order, showing whether a report
run would process it, skip it as future, or skip it by the exclude pattern,
and whether it feeds the all-time views.

Useful for checking --exclude-pattern and --all-time-prefix before a run.

Examples:
  sprintdash sprints --output text
  sprintdash sprints --exclude-pattern "" --output csv`,
	PreRunE: trackerSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := jira.NewClient(cfg, contract.Logger())
		if err := core.ExecuteSprints(rootCtx, cfg, client, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot list sprints", err)
		}
	},
}
