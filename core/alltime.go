package core

import (
	"sort"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// StitchAllTime merges the details of every sprint whose name starts with
// prefix into one continuous timeline. It returns nil views when no sprint
// qualifies.
//
// Unlike the per-sprint series, values are masked by date alone: every date
// after today is null whatever the state of the sprint it belongs to.
func StitchAllTime(details []schema.SprintDetail, prefix string, today time.Time) (*schema.AllTimeView, *schema.EVPVView) {
	eligible := make([]schema.SprintDetail, 0, len(details))
	for _, d := range details {
		if strings.HasPrefix(d.Name, prefix) {
			eligible = append(eligible, d)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Start.Before(eligible[j].Start)
	})

	rng := schema.NewDateRange(eligible[0].Start, eligible[len(eligible)-1].End)
	pv := rampPlannedValue(eligible, rng)
	earned, cost := mergeEarnedCost(eligible, rng, today)
	dates := rng.Strings()

	markers := make([]schema.SprintMarker, len(eligible))
	for i, d := range eligible {
		markers[i] = schema.SprintMarker{
			Name:      d.Name,
			StartDate: d.Start.Format(schema.DateLayout),
			EndDate:   d.End.Format(schema.DateLayout),
			Planned:   schema.Round2(d.Planned),
		}
	}

	allTime := &schema.AllTimeView{
		Dates:         dates,
		SprintMarkers: markers,
		Charts: map[string]schema.EarnedCostChart{
			schema.OverallEntity: {EarnedHours: earned, ActualCost: cost},
		},
	}
	evpv := &schema.EVPVView{
		Dates: dates,
		Charts: map[string]schema.EVPVChart{
			schema.OverallEntity: {EarnedValue: earned, PlannedValue: pv},
		},
	}
	return allTime, evpv
}

// rampPlannedValue spreads each sprint's committed total evenly over its days
// on top of the totals of the sprints before it. Days no sprint reaches hold
// the last positive value.
func rampPlannedValue(sprints []schema.SprintDetail, rng schema.DateRange) []float64 {
	raw := make(map[time.Time]float64, len(rng))
	var baseline float64
	for _, s := range sprints {
		length := schema.DaysBetween(s.Start, s.End) + 1
		increment := s.Planned
		if length > 0 {
			increment = s.Planned / float64(length)
		}
		for i := range max(length, 0) {
			day := s.Start.AddDate(0, 0, i)
			if rng.Contains(day) {
				raw[day] = baseline + increment*float64(i+1)
			}
		}
		baseline += s.Planned
	}

	out := make([]float64, len(rng))
	var last float64
	for i, d := range rng {
		if v := raw[d]; v > 0 {
			last = v
		}
		out[i] = schema.Round2(last)
	}
	return out
}

// mergeEarnedCost accumulates the buckets of the first sprint covering each date.
func mergeEarnedCost(sprints []schema.SprintDetail, rng schema.DateRange, today time.Time) ([]*float64, []*float64) {
	earned := make([]*float64, len(rng))
	cost := make([]*float64, len(rng))
	cutoff := schema.DayOf(today)

	var runEarned, runCost float64
	for i, d := range rng {
		if d.After(cutoff) {
			continue
		}
		for _, s := range sprints {
			if d.Before(s.Start) || d.After(s.End) {
				continue
			}
			if bucket, ok := s.Buckets.At(d); ok {
				runEarned += bucket.Points
				runCost += bucket.Hours
			}
			break
		}
		runEarned = schema.Round2(runEarned)
		runCost = schema.Round2(runCost)
		earned[i] = schema.Float(runEarned)
		cost[i] = schema.Float(runCost)
	}
	return earned, cost
}
