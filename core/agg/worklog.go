package agg

import "github.com/mythster/mythster-JiraSprintDashboard/schema"

const secondsPerHour = 3600.0

// AggregateWorklogs adds the issue's logged hours to the day they started on.
// Entries dated outside the sprint are ignored. It returns the authors of the
// entries that were counted, in entry order.
func AggregateWorklogs(buckets schema.Buckets, issue schema.Issue) []string {
	var authors []string
	for _, entry := range issue.Worklogs {
		if entry.Started.IsZero() {
			continue
		}
		bucket, ok := buckets.At(entry.Started)
		if !ok {
			continue
		}
		author := entry.AuthorName()
		bucket.AddHours(author, float64(entry.SecondsSpent)/secondsPerHour)
		authors = append(authors, author)
	}
	return authors
}
