package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mythster/mythster-JiraSprintDashboard/core"
	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.TrackerClient
	mgr     contract.CacheManager
	now     func() time.Time
}

// config copies the base config for one request. The reference date is the
// today argument, else the configured --today, else the current UTC date.
func (h *toolHandler) config(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := *h.baseCfg
	now := h.now()
	switch override := request.GetString("today", ""); {
	case override != "":
		today, err := contract.ParseToday(override, now)
		if err != nil {
			return nil, err
		}
		cfg.Today = today
	case !cfg.TodayFixed:
		cfg.Today = schema.DayOf(now)
	}
	return &cfg, nil
}

// readOnlyManager serves the issue cache but hides the run store, so tool
// calls do not show up in the report run history.
type readOnlyManager struct {
	contract.CacheManager
}

func (readOnlyManager) GetRunStore() contract.RunStore {
	return nil
}

// reportManager returns the cache manager used by report tools.
func (h *toolHandler) reportManager() contract.CacheManager {
	if h.mgr == nil {
		return nil
	}
	return readOnlyManager{h.mgr}
}

func (h *toolHandler) handleListSprints(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sprints, err := h.client.ListSprints(ctx, h.baseCfg.BoardID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing sprints failed: %v", err)), nil
	}
	return jsonResult(core.NewSelection(h.baseCfg).Listing(sprints))
}

func (h *toolHandler) handleGetSprintReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("sprint", "")
	if name == "" {
		return mcp.NewToolResultError("sprint is required"), nil
	}
	cfg, err := h.config(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.BuildReport(ctx, cfg, h.client, h.reportManager())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	series, ok := report.Sprint(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("sprint %q is not part of the report (missing, future or excluded)", name)), nil
	}
	return jsonResult(map[string]any{
		"sprint":  series.Name,
		"state":   series.State,
		"summary": schema.SummarizeSprint(series),
		"series":  series,
	})
}

func (h *toolHandler) handleGetEVPV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.config(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.BuildReport(ctx, cfg, h.client, h.reportManager())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	if report.EVPV == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no sprint name starts with %q", cfg.AllTimePrefix)), nil
	}

	result := map[string]any{"evpv": report.EVPV}
	if overview, ok := schema.SummarizeEVPV(report.EVPV); ok {
		result["latest"] = overview
	}
	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
