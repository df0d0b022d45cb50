package schema

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DayOf truncates t to its UTC calendar date.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// MaxDay returns the later of two dates.
func MaxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Round2 rounds v to two decimal places using the exact binary value of v,
// ties to even, so 2.675 becomes 2.67 and 0.125 becomes 0.12.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Float returns a pointer to v, for nullable series entries.
func Float(v float64) *float64 {
	return &v
}

// LastValue returns the last non-nil entry of series, or 0 when there is none.
func LastValue(series []*float64) float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != nil {
			return *series[i]
		}
	}
	return 0
}

// cleanParts trims punctuation from the ends of each name part and drops empty parts.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
		})
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Ana Souza" as "Ana S" for narrow table columns.
// Single-word names such as "Unassigned" are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	cleaned := cleanParts(strings.Fields(trimmed))
	switch {
	case len(cleaned) >= 2:
		last := []rune(cleaned[len(cleaned)-1])
		return cleaned[0] + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmed
	}
}

// AbbreviateUsers applies AbbreviateName to every user, keeping order.
func AbbreviateUsers(users []string) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = AbbreviateName(u)
	}
	return out
}
