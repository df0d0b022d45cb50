package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_MarshalJSONKeyOrder(t *testing.T) {
	report := Report{
		Sprints: []SprintSeries{
			{Name: "Sprint 2", Users: []string{}, Dates: []string{}, PlannedHours: map[string]float64{OverallEntity: 0}},
			{Name: "Sprint 1", Users: []string{}, Dates: []string{}, PlannedHours: map[string]float64{OverallEntity: 0}},
		},
		AllTime: &AllTimeView{Dates: []string{"2024-01-01"}},
		EVPV:    &EVPVView{Dates: []string{"2024-01-01"}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	out := string(data)
	i2 := indexOf(out, `"Sprint 2"`)
	i1 := indexOf(out, `"Sprint 1"`)
	iAll := indexOf(out, `"All Time"`)
	iEV := indexOf(out, `"EV/PV"`)
	assert.True(t, i2 < i1 && i1 < iAll && iAll < iEV, out)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 4)
}

func TestReport_MarshalJSONNulls(t *testing.T) {
	report := Report{
		Sprints: []SprintSeries{{
			Name:         "Sprint 1",
			Users:        []string{"Ana"},
			Dates:        []string{"2024-01-01", "2024-01-02"},
			PlannedHours: map[string]float64{OverallEntity: 3, "Ana": 3},
			Charts: map[string]CumulativeSeries{
				OverallEntity: {
					EarnedHours:       []*float64{Float(1.5), nil},
					ActualCost:        []*float64{Float(0), nil},
					DailyPlannedHours: []float64{3, 3},
				},
			},
		}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Sprint 1": {
			"users": ["Ana"],
			"dates": ["2024-01-01", "2024-01-02"],
			"plannedHours": {"overall": 3, "Ana": 3},
			"charts": {
				"overall": {"earnedHours": [1.5, null], "actualCost": [0, null], "dailyPlannedHours": [3, 3]}
			}
		}
	}`, string(data))
}

func TestReport_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Report{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, ok := (&Report{}).Sprint("Sprint 1")
	assert.False(t, ok)
}

func TestSummarizeSprint(t *testing.T) {
	s := SprintSeries{
		Name:         "Sprint 4",
		State:        ActiveState,
		Users:        []string{"Ana"},
		Dates:        []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		PlannedHours: map[string]float64{OverallEntity: 10},
		Charts: map[string]CumulativeSeries{
			OverallEntity: {
				EarnedHours: []*float64{Float(2), Float(8.5), nil},
				ActualCost:  []*float64{Float(1), Float(3), nil},
			},
		},
	}

	o := SummarizeSprint(s)

	assert.Equal(t, "2024-01-01", o.Start)
	assert.Equal(t, "2024-01-03", o.End)
	assert.Equal(t, 8.5, o.Earned)
	assert.Equal(t, 3.0, o.Cost)
	assert.Equal(t, 0.85, o.Progress)
	assert.Equal(t, SlippingValue, o.Label)
}

func TestSummarizeEVPV(t *testing.T) {
	v := &EVPVView{
		Dates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		Charts: map[string]EVPVChart{
			OverallEntity: {
				EarnedValue:  []*float64{Float(1), Float(4), nil},
				PlannedValue: []float64{2, 4, 6},
			},
		},
	}

	o, ok := SummarizeEVPV(v)

	require.True(t, ok)
	assert.Equal(t, "2024-01-02", o.Date)
	assert.Equal(t, 1.0, o.SPI)
	assert.Equal(t, OnTrackValue, o.Label)

	_, ok = SummarizeEVPV(nil)
	assert.False(t, ok)
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, OnTrackValue, GetPlainLabel(1.2))
	assert.Equal(t, SlippingValue, GetPlainLabel(0.8))
	assert.Equal(t, BehindValue, GetPlainLabel(0.5))
	assert.Equal(t, CriticalValue, GetPlainLabel(0.1))
	assert.Zero(t, Ratio(5, 0))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
