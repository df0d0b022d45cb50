// main is the entry point for the sprintdash CLI.
package main

import (
	"github.com/mythster/mythster-JiraSprintDashboard/cmd"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("sprintdash failed", err)
	}
}
