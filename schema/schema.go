// Package schema has models, constants and helpers shared by every part of sprintdash.
package schema

import "time"

// Sprint describes one iteration on the board.
// Start and End are zero when the tracker sent a value that could not be parsed.
type Sprint struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	State SprintState `json:"state"`
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
}

// StatusChange is a single workflow transition from an issue changelog.
type StatusChange struct {
	At   time.Time `json:"at"`
	From string    `json:"from"`
	To   string    `json:"to"`
}

// PointChange is a single story-point edit from an issue changelog.
type PointChange struct {
	At   time.Time `json:"at"`
	From float64   `json:"from"`
	To   float64   `json:"to"`
}

// Worklog is a single logged-work entry.
type Worklog struct {
	Author       string    `json:"author"`
	Started      time.Time `json:"started"`
	SecondsSpent int64     `json:"seconds_spent"`
}

// Issue is the snapshot of one tracker issue as the engine consumes it.
// Change lists arrive in whatever order the tracker emitted them; zero times
// mark values that could not be parsed.
type Issue struct {
	Key           string         `json:"key"`
	StoryPoints   float64        `json:"story_points"`
	Status        string         `json:"status"`
	Assignee      string         `json:"assignee"`
	Created       time.Time      `json:"created"`
	StatusChanges []StatusChange `json:"status_changes"`
	PointChanges  []PointChange  `json:"point_changes"`
	Worklogs      []Worklog      `json:"worklogs"`
}

// AssigneeName returns the assignee display name, defaulting to UnassignedUser.
func (i Issue) AssigneeName() string {
	if i.Assignee == "" {
		return UnassignedUser
	}
	return i.Assignee
}

// AuthorName returns the worklog author display name, defaulting to UnassignedUser.
func (w Worklog) AuthorName() string {
	if w.Author == "" {
		return UnassignedUser
	}
	return w.Author
}

// SprintListing is a sprint together with the selection verdict of a report run.
type SprintListing struct {
	Sprint
	Verdict SprintVerdict `json:"verdict"`
	AllTime bool          `json:"all_time"`
}
