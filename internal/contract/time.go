package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// jiraLayouts are tried in order once the offset has been normalized.
// Fractional seconds are accepted by time.Parse after the seconds field.
var jiraLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	schema.DateLayout,
}

// normalizeOffset turns a trailing "+hhmm" offset into "+hh:mm" and "Z" into "+00:00".
func normalizeOffset(s string) string {
	n := len(s)
	if n > 5 && (s[n-5] == '+' || s[n-5] == '-') && s[n-3] != ':' {
		s = s[:n-2] + ":" + s[n-2:]
	}
	return strings.Replace(s, "Z", "+00:00", 1)
}

// ParseJiraDate parses the timestamp variants the Jira REST API emits and
// returns them in UTC. Values without an offset are read as UTC.
func ParseJiraDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	normalized := normalizeOffset(s)
	for _, layout := range jiraLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", s)
}

// ParseToday resolves the reference date of a run: the override when given
// as YYYY-MM-DD, otherwise the UTC date of now.
func ParseToday(override string, now time.Time) (time.Time, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return schema.DayOf(now), nil
	}
	t, err := time.Parse(schema.DateLayout, override)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid today '%s'. expected YYYY-MM-DD", override)
	}
	return t, nil
}
