package agg

import (
	"testing"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestAggregateWorklogs(t *testing.T) {
	rng := schema.NewDateRange(day(1), day(5))
	buckets := schema.NewBuckets(rng)
	issue := schema.Issue{
		Assignee: "Ana",
		Worklogs: []schema.Worklog{
			{Author: "Ana", Started: at(3, 10), SecondsSpent: 7200},
			{Author: "Bo", Started: at(3, 14), SecondsSpent: 1800},
			{Started: at(5, 8), SecondsSpent: 3600},
		},
	}

	authors := AggregateWorklogs(buckets, issue)

	assert.Equal(t, []string{"Ana", "Bo", schema.UnassignedUser}, authors)
	assert.Equal(t, 2.5, buckets[day(3)].Hours)
	assert.Equal(t, 2.0, buckets[day(3)].UserOrZero("Ana").Hours)
	assert.Equal(t, 0.5, buckets[day(3)].UserOrZero("Bo").Hours)
	assert.Equal(t, 1.0, buckets[day(5)].UserOrZero(schema.UnassignedUser).Hours)
}

func TestAggregateWorklogs_OutsideRangeExcluded(t *testing.T) {
	rng := schema.NewDateRange(day(1), day(5))
	buckets := schema.NewBuckets(rng)
	issue := schema.Issue{
		Worklogs: []schema.Worklog{
			{Author: "Cy", Started: at(6, 0), SecondsSpent: 3600},
			{Author: "Cy", Started: at(31, 0).AddDate(0, -1, 0), SecondsSpent: 3600},
			{Author: "Dee", SecondsSpent: 3600},
		},
	}

	authors := AggregateWorklogs(buckets, issue)

	assert.Empty(t, authors)
	for _, d := range rng {
		assert.Zero(t, buckets[d].Hours)
		assert.Empty(t, buckets[d].Users)
	}
}
