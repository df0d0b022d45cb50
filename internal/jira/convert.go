package jira

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// statusField is the changelog field name of workflow transitions.
const statusField = "status"

// converter turns Jira payloads into domain types. Dates that cannot be
// parsed are logged and left zero, which the engine treats as absent.
type converter struct {
	pointsField string
	pointsLabel string
	logger      *slog.Logger
}

func (c converter) date(value, what, key string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := contract.ParseJiraDate(value)
	if err != nil {
		c.logger.Warn("Could not parse date", "value", value, "field", what, "key", key)
		return time.Time{}
	}
	return t
}

func (c converter) sprint(s jiraSprint) schema.Sprint {
	key := fmt.Sprintf("sprint %d", s.ID)
	return schema.Sprint{
		ID:    s.ID,
		Name:  s.Name,
		State: schema.SprintState(strings.ToLower(s.State)),
		Start: c.date(s.StartDate, "startDate", key),
		End:   c.date(s.EndDate, "endDate", key),
	}
}

// issue converts one search result. worklogs replaces the embedded worklog
// list when the caller had to fetch the complete one.
func (c converter) issue(raw jiraIssue, fields issueFields, worklogs []jiraWorklog) schema.Issue {
	issue := schema.Issue{
		Key:         raw.Key,
		StoryPoints: c.points(raw.Fields[c.pointsField], raw.Key),
		Created:     c.date(fields.Created, "created", raw.Key),
	}
	if fields.Assignee != nil {
		issue.Assignee = fields.Assignee.DisplayName
	}
	if fields.Status != nil {
		issue.Status = fields.Status.Name
	}

	for _, h := range raw.Changelog.Histories {
		at := c.date(h.Created, "changelog", raw.Key)
		for _, item := range h.Items {
			switch item.Field {
			case statusField:
				issue.StatusChanges = append(issue.StatusChanges, schema.StatusChange{
					At:   at,
					From: deref(item.FromString),
					To:   deref(item.ToString),
				})
			case c.pointsLabel:
				issue.PointChanges = append(issue.PointChanges, schema.PointChange{
					At:   at,
					From: c.pointString(deref(item.FromString), raw.Key),
					To:   c.pointString(deref(item.ToString), raw.Key),
				})
			}
		}
	}

	for _, w := range worklogs {
		entry := schema.Worklog{
			Started:      c.date(w.Started, "worklog", raw.Key),
			SecondsSpent: w.TimeSpentSeconds,
		}
		if w.Author != nil {
			entry.Author = w.Author.DisplayName
		}
		issue.Worklogs = append(issue.Worklogs, entry)
	}
	return issue
}

// points reads the story points field, which Jira sends as a number, a
// numeric string or null.
func (c converter) points(raw json.RawMessage, key string) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return c.pointString(s, key)
	}
	c.logger.Warn("Ignoring story points value", "value", string(raw), "key", key)
	return 0
}

// pointString parses a changelog story points value. Empty means zero.
func (c converter) pointString(s, key string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.logger.Warn("Ignoring story points value", "value", s, "key", key)
		return 0
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
