package agg

import (
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// Credit is a share of an issue's story points earned on one day.
type Credit struct {
	Day    time.Time
	Points float64
}

// creditDates holds the outcome of scanning one issue's status history.
type creditDates struct {
	half time.Time // zero when no half credit applies
	done time.Time // zero when the issue was never finished inside the sprint
}

// findCreditDates applies the half-credit rule to an issue.
// Half credit lands when work left "To Do" (or at creation when no such
// transition exists), the other half when the issue last moved to "Done".
func findCreditDates(issue schema.Issue, sprintStart time.Time) creditDates {
	var exitDate, doneDate time.Time
	for _, change := range sortedStatusChanges(issue.StatusChanges) {
		day := schema.DayOf(change.At)
		if change.From == schema.ToDoStatus {
			exitDate = day
		}
		if change.To == schema.DoneStatus {
			doneDate = day
		}
	}

	var dates creditDates
	if issue.Status != schema.ToDoStatus {
		switch {
		case !exitDate.IsZero():
			dates.half = clampToStart(exitDate, sprintStart)
		case !issue.Created.IsZero():
			dates.half = clampToStart(issue.Created, sprintStart)
		}
	}
	if !doneDate.IsZero() && !doneDate.Before(schema.DayOf(sprintStart)) {
		dates.done = doneDate
	}
	return dates
}

// AllocateCredit decides which days of the sprint earn the issue's points.
// Credits falling outside rng are dropped. An issue without points earns nothing.
func AllocateCredit(issue schema.Issue, sprintStart time.Time, rng schema.DateRange) []Credit {
	if issue.StoryPoints == 0 {
		return nil
	}

	dates := findCreditDates(issue, sprintStart)
	half := issue.StoryPoints / 2

	var credits []Credit
	if !dates.half.IsZero() && rng.Contains(dates.half) {
		// A start that comes after the finish does not earn anything.
		if dates.done.IsZero() || !dates.half.After(dates.done) {
			credits = append(credits, Credit{Day: dates.half, Points: half})
		}
	}
	if !dates.done.IsZero() && rng.Contains(dates.done) {
		credits = append(credits, Credit{Day: dates.done, Points: half})
	}
	return credits
}

// ApplyCredit allocates the issue's points and adds them to the buckets,
// overall and for the issue's assignee.
func ApplyCredit(buckets schema.Buckets, issue schema.Issue, sprintStart time.Time, rng schema.DateRange) {
	user := issue.AssigneeName()
	for _, credit := range AllocateCredit(issue, sprintStart, rng) {
		if bucket, ok := buckets.At(credit.Day); ok {
			bucket.AddPoints(user, credit.Points)
		}
	}
}
