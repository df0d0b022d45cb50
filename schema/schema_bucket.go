package schema

import "time"

// DateRange is an ordered run of consecutive UTC calendar dates.
type DateRange []time.Time

// NewDateRange returns every calendar date from start to end, both inclusive.
// It returns an empty range when end falls before start.
func NewDateRange(start, end time.Time) DateRange {
	first, last := DayOf(start), DayOf(end)
	if last.Before(first) {
		return DateRange{}
	}
	days := DaysBetween(first, last) + 1
	rng := make(DateRange, 0, days)
	for i := range days {
		rng = append(rng, first.AddDate(0, 0, i))
	}
	return rng
}

// Contains reports whether day lies within the range.
func (r DateRange) Contains(day time.Time) bool {
	if len(r) == 0 {
		return false
	}
	d := DayOf(day)
	return !d.Before(r[0]) && !d.After(r[len(r)-1])
}

// Strings renders every date of the range with DateLayout.
func (r DateRange) Strings() []string {
	out := make([]string, len(r))
	for i, d := range r {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// UserTotals holds one user's contribution to a single day.
type UserTotals struct {
	Points float64 `json:"points"`
	Hours  float64 `json:"hours"`
}

// DailyBucket accumulates credited points and logged hours for one day.
type DailyBucket struct {
	Points float64                `json:"points"`
	Hours  float64                `json:"hours"`
	Users  map[string]*UserTotals `json:"users"`
}

// User returns the totals record for name, inserting a zero record on first reference.
func (b *DailyBucket) User(name string) *UserTotals {
	if b.Users == nil {
		b.Users = make(map[string]*UserTotals)
	}
	totals, ok := b.Users[name]
	if !ok {
		totals = &UserTotals{}
		b.Users[name] = totals
	}
	return totals
}

// UserOrZero returns a copy of name's totals without inserting anything.
func (b *DailyBucket) UserOrZero(name string) UserTotals {
	if totals, ok := b.Users[name]; ok {
		return *totals
	}
	return UserTotals{}
}

// AddPoints credits points to the day overall and to user.
func (b *DailyBucket) AddPoints(user string, points float64) {
	b.Points += points
	b.User(user).Points += points
}

// AddHours adds logged hours to the day overall and to user.
func (b *DailyBucket) AddHours(user string, hours float64) {
	b.Hours += hours
	b.User(user).Hours += hours
}

// Buckets maps each calendar date of a sprint to its DailyBucket.
type Buckets map[time.Time]*DailyBucket

// NewBuckets creates a zero bucket for every date in rng.
func NewBuckets(rng DateRange) Buckets {
	buckets := make(Buckets, len(rng))
	for _, d := range rng {
		buckets[d] = &DailyBucket{Users: make(map[string]*UserTotals)}
	}
	return buckets
}

// At returns the bucket for day, if day belongs to the sprint.
func (b Buckets) At(day time.Time) (*DailyBucket, bool) {
	bucket, ok := b[DayOf(day)]
	return bucket, ok
}
