// Package expiry derives the expiry status of a batch from its date.
// Everything here is pure: "today" comes from an injected clock.
package expiry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shelfwatch/internal/shared/biztime"
)

type Status string

const (
	StatusExpired Status = "expired"
	StatusUrgent  Status = "urgent"
	StatusWarning Status = "warning"
	StatusOK      Status = "ok"
)

const (
	// UrgentWithinDays is the last day count still classified as urgent.
	UrgentWithinDays = 7
	// WarningWithinDays is the last day count still classified as warning.
	WarningWithinDays = 30
)

var ErrInvalidDate = errors.New("invalid expiry date")

// IsExpiringSoon is true for urgent and warning.
func (s Status) IsExpiringSoon() bool {
	return s == StatusUrgent || s == StatusWarning
}

// Evaluation is the derived, never persisted view of one expiry date.
// DaysUntil is negative once the date has passed.
type Evaluation struct {
	Status    Status `json:"status"`
	DaysUntil int    `json:"days_until"`
}

// Classify maps a day distance onto a Status. Zero (expires today) is
// urgent, not expired.
func Classify(daysUntil int) Status {
	switch {
	case daysUntil < 0:
		return StatusExpired
	case daysUntil <= UrgentWithinDays:
		return StatusUrgent
	case daysUntil <= WarningWithinDays:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Engine evaluates expiry dates against today in a fixed timezone.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests and replays.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine; a nil loc means the business timezone.
func NewEngine(loc *time.Location, opts ...Option) *Engine {
	if loc == nil {
		loc = biztime.Location()
	}
	e := &Engine{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the timezone used to cut calendar days.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Today returns midnight of the current day.
func (e *Engine) Today() time.Time {
	return biztime.StartOfDay(e.now(), e.loc)
}

// Evaluate classifies an expiry date relative to today. Both sides are
// reduced to midnight before differencing.
func (e *Engine) Evaluate(expiryDate time.Time) Evaluation {
	return e.EvaluateOn(e.Today(), expiryDate)
}

// EvaluateOn classifies an expiry date relative to a caller-supplied
// today, so a batch of evaluations can share one calendar day.
func (e *Engine) EvaluateOn(today, expiryDate time.Time) Evaluation {
	days := biztime.DaysBetween(today, expiryDate, e.loc)
	return Evaluation{Status: Classify(days), DaysUntil: days}
}

// EvaluateString parses a stored date and evaluates it. Empty or
// unparseable input yields an error wrapping ErrInvalidDate.
func (e *Engine) EvaluateString(raw string) (Evaluation, time.Time, error) {
	date, err := e.ParseDate(raw)
	if err != nil {
		return Evaluation{}, time.Time{}, err
	}
	return e.Evaluate(date), date, nil
}

// EvaluateStringOn is EvaluateString against a fixed today.
func (e *Engine) EvaluateStringOn(today time.Time, raw string) (Evaluation, time.Time, error) {
	date, err := e.ParseDate(raw)
	if err != nil {
		return Evaluation{}, time.Time{}, err
	}
	return e.EvaluateOn(today, date), date, nil
}

// ParseDate parses a stored expiry date in the engine's timezone.
func (e *Engine) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: missing", ErrInvalidDate)
	}
	date, err := biztime.ParseDate(raw, e.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return date, nil
}
