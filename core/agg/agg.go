// Package agg has the per-day aggregation rules for sprint issue histories.
//
// Every function here works on one sprint at a time and mutates only the
// schema.Buckets it is handed, so callers can process sprints independently.
package agg

import (
	"sort"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// sortedStatusChanges returns the parseable status changes of an issue in
// chronological order. Ties keep the order in which the tracker emitted them.
func sortedStatusChanges(changes []schema.StatusChange) []schema.StatusChange {
	out := make([]schema.StatusChange, 0, len(changes))
	for _, c := range changes {
		if c.At.IsZero() {
			continue // unparseable date
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	return out
}

// sortedPointChanges returns the parseable story-point changes of an issue in
// chronological order. Ties keep the order in which the tracker emitted them.
func sortedPointChanges(changes []schema.PointChange) []schema.PointChange {
	out := make([]schema.PointChange, 0, len(changes))
	for _, c := range changes {
		if c.At.IsZero() {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	return out
}

// clampToStart moves day forward to start when it falls before it.
func clampToStart(day, start time.Time) time.Time {
	return schema.MaxDay(schema.DayOf(day), schema.DayOf(start))
}

// GroupByAssignee splits issues by assignee display name, preserving issue order.
func GroupByAssignee(issues []schema.Issue) map[string][]schema.Issue {
	grouped := make(map[string][]schema.Issue)
	for _, issue := range issues {
		name := issue.AssigneeName()
		grouped[name] = append(grouped[name], issue)
	}
	return grouped
}

// PlannedTotals sums current story points overall and per assignee.
// Assignees whose issues carry no points are left out of the map.
func PlannedTotals(issues []schema.Issue) map[string]float64 {
	totals := map[string]float64{schema.OverallEntity: 0}
	for _, issue := range issues {
		if issue.StoryPoints == 0 {
			continue
		}
		totals[schema.OverallEntity] += issue.StoryPoints
		totals[issue.AssigneeName()] += issue.StoryPoints
	}
	return totals
}
