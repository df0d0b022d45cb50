package core

import (
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour int) time.Time {
	return time.Date(2024, 1, d, hour, 0, 0, 0, time.UTC)
}

// values dereferences a nullable series, using -1 for nulls.
func values(series []*float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if v == nil {
			out[i] = -1
			continue
		}
		out[i] = *v
	}
	return out
}

// doneIssue is the issue of the reference sprint: 5 points started on the
// 2nd, finished on the 4th, with 2 hours logged on the 3rd.
func doneIssue() schema.Issue {
	return schema.Issue{
		Key:         "DASH-1",
		StoryPoints: 5,
		Status:      schema.DoneStatus,
		Assignee:    "Ana",
		Created:     at(1, 9),
		StatusChanges: []schema.StatusChange{
			{At: at(4, 15), From: "In Progress", To: schema.DoneStatus},
			{At: at(2, 10), From: schema.ToDoStatus, To: "In Progress"},
		},
		Worklogs: []schema.Worklog{
			{Author: "Ana", Started: at(3, 11), SecondsSpent: 7200},
		},
	}
}

func closedSprint(id int64, name string, start, end time.Time) schema.Sprint {
	return schema.Sprint{ID: id, Name: name, State: schema.ClosedState, Start: start, End: end}
}
