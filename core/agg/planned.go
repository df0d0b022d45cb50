package agg

import "github.com/mythster/mythster-JiraSprintDashboard/schema"

// ReconstructPlanned returns the committed story points for every day of rng.
//
// Every day starts from the sum of the issues' current points, then each
// story-point edit adds its delta to the days on or after the edit. The edits
// are layered on top of the current values rather than unwound from them;
// dashboards read the resulting curve as is.
func ReconstructPlanned(issues []schema.Issue, rng schema.DateRange) []float64 {
	planned := make([]float64, len(rng))
	for _, issue := range issues {
		if issue.StoryPoints > 0 {
			for i := range planned {
				planned[i] += issue.StoryPoints
			}
		}
		for _, change := range sortedPointChanges(issue.PointChanges) {
			day := schema.DayOf(change.At)
			delta := change.To - change.From
			for i, d := range rng {
				if !d.Before(day) {
					planned[i] += delta
				}
			}
		}
	}
	return planned
}
