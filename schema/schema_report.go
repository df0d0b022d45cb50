package schema

import (
	"bytes"
	"encoding/json"
	"time"
)

// CumulativeSeries is one entity's burn-up chart for a sprint.
// Nil entries are dates that have not happened yet.
type CumulativeSeries struct {
	EarnedHours       []*float64 `json:"earnedHours"`
	ActualCost        []*float64 `json:"actualCost"`
	DailyPlannedHours []float64  `json:"dailyPlannedHours"`
}

// SprintSeries is the per-sprint view consumed by the dashboard.
type SprintSeries struct {
	Name         string                      `json:"-"`
	State        SprintState                 `json:"-"`
	Users        []string                    `json:"users"`
	Dates        []string                    `json:"dates"`
	PlannedHours map[string]float64          `json:"plannedHours"`
	Charts       map[string]CumulativeSeries `json:"charts"`
}

// Entities returns "overall" followed by every user, in chart order.
func (s SprintSeries) Entities() []string {
	entities := make([]string, 0, len(s.Users)+1)
	entities = append(entities, OverallEntity)
	return append(entities, s.Users...)
}

// SprintDetail is the side record of a processed sprint kept for all-time stitching.
type SprintDetail struct {
	Name    string
	Start   time.Time
	End     time.Time
	Buckets Buckets
	Planned float64
}

// SprintMarker annotates the all-time chart with one sprint's window.
type SprintMarker struct {
	Name      string  `json:"name"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Planned   float64 `json:"planned"`
}

// EarnedCostChart holds merged earned and cost curves.
type EarnedCostChart struct {
	EarnedHours []*float64 `json:"earnedHours"`
	ActualCost  []*float64 `json:"actualCost"`
}

// AllTimeView is the continuous timeline stitched from every eligible sprint.
type AllTimeView struct {
	Dates         []string                   `json:"dates"`
	SprintMarkers []SprintMarker             `json:"sprint_markers"`
	Charts        map[string]EarnedCostChart `json:"charts"`
}

// EVPVChart compares earned value against the ramped planned value.
type EVPVChart struct {
	EarnedValue  []*float64 `json:"earnedValue"`
	PlannedValue []float64  `json:"plannedValue"`
}

// EVPVView is the earned-value versus planned-value comparison over the all-time range.
type EVPVView struct {
	Dates  []string             `json:"dates"`
	Charts map[string]EVPVChart `json:"charts"`
}

// Report is the complete output of one run.
// Sprints keep the order in which the source listed them.
type Report struct {
	Sprints []SprintSeries
	AllTime *AllTimeView
	EVPV    *EVPVView
}

// Sprint returns the series for the named sprint.
func (r *Report) Sprint(name string) (SprintSeries, bool) {
	for _, s := range r.Sprints {
		if s.Name == name {
			return s, true
		}
	}
	return SprintSeries{}, false
}

// MarshalJSON writes the report as one object keyed by sprint name, followed
// by the "All Time" and "EV/PV" views when present.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeEntry := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	for _, s := range r.Sprints {
		if err := writeEntry(s.Name, s); err != nil {
			return nil, err
		}
	}
	if r.AllTime != nil {
		if err := writeEntry(AllTimeKey, r.AllTime); err != nil {
			return nil, err
		}
	}
	if r.EVPV != nil {
		if err := writeEntry(EVPVKey, r.EVPV); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
