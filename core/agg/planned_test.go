package agg

import (
	"testing"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestReconstructPlanned(t *testing.T) {
	rng := schema.NewDateRange(day(1), day(4))

	tests := []struct {
		name     string
		issues   []schema.Issue
		expected []float64
	}{
		{
			name:     "no issues",
			expected: []float64{0, 0, 0, 0},
		},
		{
			name:     "baseline only",
			issues:   []schema.Issue{{StoryPoints: 3}, {StoryPoints: 2}},
			expected: []float64{5, 5, 5, 5},
		},
		{
			name: "edits stack on the current value",
			issues: []schema.Issue{{
				StoryPoints: 5,
				PointChanges: []schema.PointChange{
					{At: at(3, 9), From: 3, To: 5},
				},
			}},
			expected: []float64{5, 5, 7, 7},
		},
		{
			name: "edits applied in chronological order",
			issues: []schema.Issue{{
				StoryPoints: 1,
				PointChanges: []schema.PointChange{
					{At: at(4, 0), From: 2, To: 1},
					{At: at(2, 0), From: 0, To: 2},
				},
			}},
			expected: []float64{1, 3, 3, 2},
		},
		{
			name: "negative baseline ignored but edits kept",
			issues: []schema.Issue{{
				StoryPoints: -2,
				PointChanges: []schema.PointChange{
					{At: at(1, 0), From: 0, To: 1},
				},
			}},
			expected: []float64{1, 1, 1, 1},
		},
		{
			name: "edit before the range hits every day",
			issues: []schema.Issue{{
				PointChanges: []schema.PointChange{
					{At: at(1, 0).AddDate(0, 0, -3), From: 0, To: 4},
				},
			}},
			expected: []float64{4, 4, 4, 4},
		},
		{
			name: "unparseable edit skipped",
			issues: []schema.Issue{{
				StoryPoints:  2,
				PointChanges: []schema.PointChange{{From: 0, To: 8}},
			}},
			expected: []float64{2, 2, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReconstructPlanned(tt.issues, rng))
		})
	}
}
