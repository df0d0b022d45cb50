// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
)

// NewMCPServer initializes and configures the sprint report MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Sprint Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
		now:     time.Now,
	}

	s.AddTool(mcp.NewTool("list_sprints",
		mcp.WithDescription("List the sprints of the configured Jira board with whether a report would include them."),
	), h.handleListSprints)

	s.AddTool(mcp.NewTool("get_sprint_report",
		mcp.WithDescription("Build the burn-up series (earned points, logged hours, planned points) of one sprint."),
		mcp.WithString("sprint", mcp.Description("Exact sprint name, e.g. 'Sprint 12'."), mcp.Required()),
		mcp.WithString("today", mcp.Description("Reference date as YYYY-MM-DD. Defaults to the current UTC date.")),
	), h.handleGetSprintReport)

	s.AddTool(mcp.NewTool("get_ev_pv",
		mcp.WithDescription("Compare earned value against planned value across every all-time sprint."),
		mcp.WithString("today", mcp.Description("Reference date as YYYY-MM-DD. Defaults to the current UTC date.")),
	), h.handleGetEVPV)

	return s
}

// StartMCPServer starts the sprint report MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
