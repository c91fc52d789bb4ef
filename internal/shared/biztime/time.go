// Package biztime provides business timezone calendar helpers.
// Timestamps are stored in UTC; the business timezone only decides where
// one calendar day ends and the next begins.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone makes the host's local zone the business zone.
const DefaultTimezone = "Local"

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

var (
	bizLocation *time.Location
	bizMu       sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	bizMu.Lock()
	bizLocation = loc
	bizMu.Unlock()
	return nil
}

// Location returns the business timezone, falling back to time.Local.
func Location() *time.Location {
	bizMu.RLock()
	defer bizMu.RUnlock()
	if bizLocation == nil {
		return time.Local
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts calendar days from a to b as seen in loc. Both sides
// are reduced to a UTC-midnight day number first, so time-of-day and DST
// shifts never change the result and dates outside time.Duration's range
// still difference exactly.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
	return int(to - from)
}

// ParseDate parses a YYYY-MM-DD date (or an RFC3339 timestamp, keeping only
// its calendar date) as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q", s)
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// DateKey formats t's calendar date in loc, e.g. "2026-10-14".
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// WeekKey formats t's ISO week in loc, e.g. "2026-W42".
func WeekKey(t time.Time, loc *time.Location) string {
	year, week := t.In(loc).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
