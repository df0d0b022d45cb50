package cmd

import (
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/iocache"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/jira"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the sprintdash MCP server",
	Long:  `Launch an MCP server that allows AI agents to read sprint reports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Progress output would pollute stdio, which carries the protocol.
		if err := trackerSetupWrapper(cmd, args); err != nil {
			return err
		}
		cfg.ShowProgress = false
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		defer iocache.CloseStores()
		client := jira.NewClient(cfg, contract.Logger())
		return mcp.StartMCPServer(rootCtx, cfg, client, cacheManager)
	},
}
