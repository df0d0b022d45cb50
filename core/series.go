package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/core/agg"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// ErrInvalidSprintDates is returned for sprints whose start or end date is unknown.
var ErrInvalidSprintDates = errors.New("invalid sprint start/end dates")

// BuildSprintSeries turns one sprint and its issues into the dashboard series
// and the side record used for all-time stitching.
//
// Dates after today are null only while the sprint is active. A closed sprint
// whose end lies in the future keeps every value.
func BuildSprintSeries(sprint schema.Sprint, issues []schema.Issue, today time.Time) (schema.SprintSeries, schema.SprintDetail, error) {
	if sprint.Start.IsZero() || sprint.End.IsZero() {
		return schema.SprintSeries{}, schema.SprintDetail{}, fmt.Errorf("sprint %q: %w", sprint.Name, ErrInvalidSprintDates)
	}

	start, end := schema.DayOf(sprint.Start), schema.DayOf(sprint.End)
	rng := schema.NewDateRange(start, end)
	buckets := schema.NewBuckets(rng)

	userSet := make(map[string]struct{})
	for _, issue := range issues {
		userSet[issue.AssigneeName()] = struct{}{}
		for _, author := range agg.AggregateWorklogs(buckets, issue) {
			userSet[author] = struct{}{}
		}
		agg.ApplyCredit(buckets, issue, start, rng)
	}

	users := make([]string, 0, len(userSet))
	for u := range userSet {
		users = append(users, u)
	}
	sort.Strings(users)

	planned := agg.PlannedTotals(issues)
	byUser := agg.GroupByAssignee(issues)

	series := schema.SprintSeries{
		Name:         sprint.Name,
		State:        sprint.State,
		Users:        users,
		Dates:        rng.Strings(),
		PlannedHours: roundTotals(planned),
		Charts:       make(map[string]schema.CumulativeSeries, len(users)+1),
	}

	masked := futureMask(rng, sprint.State, today)
	series.Charts[schema.OverallEntity] = cumulate(rng, buckets, masked, agg.ReconstructPlanned(issues, rng), func(b *schema.DailyBucket) schema.UserTotals {
		return schema.UserTotals{Points: b.Points, Hours: b.Hours}
	})
	for _, user := range users {
		series.Charts[user] = cumulate(rng, buckets, masked, agg.ReconstructPlanned(byUser[user], rng), func(b *schema.DailyBucket) schema.UserTotals {
			return b.UserOrZero(user)
		})
	}

	detail := schema.SprintDetail{
		Name:    sprint.Name,
		Start:   start,
		End:     end,
		Buckets: buckets,
		Planned: planned[schema.OverallEntity],
	}
	return series, detail, nil
}

// futureMask marks the dates of an active sprint that come after today.
func futureMask(rng schema.DateRange, state schema.SprintState, today time.Time) []bool {
	masked := make([]bool, len(rng))
	if state != schema.ActiveState {
		return masked
	}
	cutoff := schema.DayOf(today)
	for i, d := range rng {
		masked[i] = d.After(cutoff)
	}
	return masked
}

// cumulate runs the burn-up sums for one entity. Each value is rounded as it
// is produced and builds on the last value that was not masked.
func cumulate(rng schema.DateRange, buckets schema.Buckets, masked []bool, planned []float64, pick func(*schema.DailyBucket) schema.UserTotals) schema.CumulativeSeries {
	out := schema.CumulativeSeries{
		EarnedHours:       make([]*float64, len(rng)),
		ActualCost:        make([]*float64, len(rng)),
		DailyPlannedHours: make([]float64, len(planned)),
	}
	var earned, cost float64
	for i, d := range rng {
		if masked[i] {
			continue // stays null
		}
		var day schema.UserTotals
		if bucket, ok := buckets.At(d); ok {
			day = pick(bucket)
		}
		earned = schema.Round2(earned + day.Points)
		cost = schema.Round2(cost + day.Hours)
		out.EarnedHours[i] = schema.Float(earned)
		out.ActualCost[i] = schema.Float(cost)
	}
	for i, p := range planned {
		out.DailyPlannedHours[i] = schema.Round2(p)
	}
	return out
}

// roundTotals rounds every committed total for output.
func roundTotals(totals map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for k, v := range totals {
		out[k] = schema.Round2(v)
	}
	return out
}
