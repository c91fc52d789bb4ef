package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	return NewEngine(time.UTC, WithClock(func() time.Time { return now }))
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		days int
		want Status
	}{
		{-30, StatusExpired},
		{-1, StatusExpired},
		{0, StatusUrgent},
		{1, StatusUrgent},
		{7, StatusUrgent},
		{8, StatusWarning},
		{30, StatusWarning},
		{31, StatusOK},
		{365, StatusOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.days), "days=%d", tt.days)
	}
}

func TestEngine_Evaluate_RelativeToToday(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 45, 0, 0, time.UTC)
	engine := fixedEngine(t, now)
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiry     time.Time
		wantDays   int
		wantStatus Status
	}{
		{"today", today, 0, StatusUrgent},
		{"yesterday", today.AddDate(0, 0, -1), -1, StatusExpired},
		{"in seven days", today.AddDate(0, 0, 7), 7, StatusUrgent},
		{"in eight days", today.AddDate(0, 0, 8), 8, StatusWarning},
		{"in thirty one days", today.AddDate(0, 0, 31), 31, StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Evaluate(tt.expiry)
			assert.Equal(t, tt.wantDays, got.DaysUntil)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestEngine_Evaluate_FarDates(t *testing.T) {
	engine := fixedEngine(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		raw        string
		wantDays   int
		wantStatus Status
	}{
		{"0001-01-01", -739902, StatusExpired},
		{"2500-01-01", 172839, StatusOK},
		{"9999-12-31", 2912156, StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			eval, _, err := engine.EvaluateString(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, eval.DaysUntil)
			assert.Equal(t, tt.wantStatus, eval.Status)
		})
	}
}

func TestEngine_Evaluate_TimeOfDaySkew(t *testing.T) {
	// Late evening "now" against an expiry stored with an early timestamp
	// on the same calendar day must still be today.
	engine := fixedEngine(t, time.Date(2026, 10, 14, 23, 59, 59, 0, time.UTC))

	got := engine.Evaluate(time.Date(2026, 10, 14, 0, 0, 1, 0, time.UTC))
	assert.Equal(t, 0, got.DaysUntil)
	assert.Equal(t, StatusUrgent, got.Status)
}

func TestEngine_Evaluate_Deterministic(t *testing.T) {
	engine := fixedEngine(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	expiry := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	first := engine.Evaluate(expiry)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Evaluate(expiry))
	}
}

func TestEngine_EvaluateString(t *testing.T) {
	engine := fixedEngine(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	eval, date, err := engine.EvaluateString("2026-10-11")
	require.NoError(t, err)
	assert.Equal(t, -3, eval.DaysUntil)
	assert.Equal(t, StatusExpired, eval.Status)
	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), date)

	for _, raw := range []string{"", "   ", "not-a-date", "2026-13-45"} {
		_, _, err := engine.EvaluateString(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, "raw=%q", raw)
	}
}

func TestStatus_IsExpiringSoon(t *testing.T) {
	assert.True(t, StatusUrgent.IsExpiringSoon())
	assert.True(t, StatusWarning.IsExpiringSoon())
	assert.False(t, StatusExpired.IsExpiringSoon())
	assert.False(t, StatusOK.IsExpiringSoon())
}
