package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/logger"
)

type stubTenants struct {
	tenants []*subject.Subject
	err     error
}

func (s *stubTenants) List(ctx context.Context) ([]*subject.Subject, error) {
	return s.tenants, s.err
}

type stubInventory struct {
	items map[string][]*inventory.Item
	errs  map[string]error
	panic string
}

func (s *stubInventory) ListByTenant(ctx context.Context, tenantID string) ([]*inventory.Item, error) {
	if tenantID == s.panic {
		panic("corrupt row")
	}
	if err := s.errs[tenantID]; err != nil {
		return nil, err
	}
	return s.items[tenantID], nil
}

type stubPreferences struct {
	prefs map[string]*inventory.NotificationPreference
}

func (s *stubPreferences) GetByTenant(ctx context.Context, tenantID string) (*inventory.NotificationPreference, error) {
	return s.prefs[tenantID], nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	daily  map[string]*dto.DailyAlert
	weekly map[string]*dto.WeeklyReport
	seen   map[string]bool
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{
		daily:  make(map[string]*dto.DailyAlert),
		weekly: make(map[string]*dto.WeeklyReport),
		seen:   make(map[string]bool),
	}
}

func (d *recordingDispatcher) claim(key string) bool {
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func (d *recordingDispatcher) DispatchDaily(ctx context.Context, period string, alert *dto.DailyAlert) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.claim("daily:" + alert.Recipient.TenantID + ":" + period) {
		return false, nil
	}
	d.daily[alert.Recipient.TenantID] = alert
	return true, nil
}

func (d *recordingDispatcher) DispatchWeekly(ctx context.Context, period string, report *dto.WeeklyReport) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.claim("weekly:" + report.Recipient.TenantID + ":" + period) {
		return false, nil
	}
	d.weekly[report.Recipient.TenantID] = report
	return true, nil
}

func tenantN(id string) *subject.Subject {
	return &subject.Subject{ID: id, Email: id + "@example.com"}
}

func newTestJob(tenants *stubTenants, inv *stubInventory, prefs *stubPreferences, d Dispatcher) *Job {
	return NewJob(tenants, inv, prefs, newTestSelector(), d, 4, logger.NewNopLogger())
}

func TestJob_DailyRunIsolatesTenantFailures(t *testing.T) {
	tenants := &stubTenants{tenants: []*subject.Subject{tenantN("a"), tenantN("b"), tenantN("c"), tenantN("d")}}
	inv := &stubInventory{
		items: map[string][]*inventory.Item{
			"a": {item("i1", "Milk", "Dairy", batch("b1", 1))},
			"d": {item("i2", "Bread", "Bakery", batch("b2", 100))},
		},
		errs:  map[string]error{"b": errors.New("query timeout")},
		panic: "c",
	}
	d := newRecordingDispatcher()

	result, err := newTestJob(tenants, inv, &stubPreferences{}, d).Run(context.Background(), KindDaily)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Tenants)
	assert.Equal(t, 1, result.Dispatched)
	assert.Equal(t, 1, result.Skipped, "tenant d has nothing within the threshold")
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "2026-10-14", result.Period)

	failed := map[string]error{}
	for _, te := range result.Errors {
		failed[te.TenantID] = te
	}
	assert.Contains(t, failed, "b")
	assert.True(t, IsPanic(failed["c"]))
	assert.Contains(t, d.daily, "a")
}

func TestJob_RespectsPreferences(t *testing.T) {
	tenants := &stubTenants{tenants: []*subject.Subject{tenantN("on"), tenantN("off"), tenantN("bad")}}
	stock := []*inventory.Item{item("i1", "Milk", "Dairy", batch("b1", 10))}
	inv := &stubInventory{items: map[string][]*inventory.Item{"on": stock, "off": stock, "bad": stock}}
	prefs := &stubPreferences{prefs: map[string]*inventory.NotificationPreference{
		"on":  {TenantID: "on", DailyAlertsEnabled: true, AlertThresholdDays: 14, WeeklyReportEnabled: true},
		"off": {TenantID: "off", DailyAlertsEnabled: false, AlertThresholdDays: 14, WeeklyReportEnabled: false},
		"bad": {TenantID: "bad", DailyAlertsEnabled: true, AlertThresholdDays: -1},
	}}
	d := newRecordingDispatcher()

	result, err := newTestJob(tenants, inv, prefs, d).Run(context.Background(), KindDaily)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Dispatched)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad", result.Errors[0].TenantID)
	assert.ErrorIs(t, result.Errors[0], inventory.ErrInvalidPreference)
	assert.Equal(t, 14, d.daily["on"].ThresholdDays)
}

func TestJob_RerunDoesNotDoubleSend(t *testing.T) {
	tenants := &stubTenants{tenants: []*subject.Subject{tenantN("a")}}
	inv := &stubInventory{items: map[string][]*inventory.Item{"a": {item("i1", "Milk", "Dairy", batch("b1", -1))}}}
	d := newRecordingDispatcher()
	job := newTestJob(tenants, inv, &stubPreferences{}, d)

	first, err := job.Run(context.Background(), KindWeekly)
	require.NoError(t, err)
	second, err := job.Run(context.Background(), KindWeekly)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Dispatched)
	assert.Equal(t, 0, second.Dispatched)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, "2026-W42", second.Period)
}

func TestJob_RunCrossingMidnightKeepsOneDay(t *testing.T) {
	// The first clock read happens a second before midnight; every later
	// read is already on the next day.
	var reads atomic.Int32
	beforeMidnight := time.Date(2026, 10, 14, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2026, 10, 15, 0, 0, 1, 0, time.UTC)
	engine := expiry.NewEngine(time.UTC, expiry.WithClock(func() time.Time {
		if reads.Add(1) == 1 {
			return beforeMidnight
		}
		return afterMidnight
	}))
	selector := NewSelector(engine, logger.NewNopLogger(), 0)

	tenants := &stubTenants{tenants: []*subject.Subject{tenantN("a"), tenantN("b"), tenantN("c")}}
	inv := &stubInventory{items: map[string][]*inventory.Item{
		"a": {item("i1", "Milk", "Dairy", batch("b1", 0))},
		"b": {item("i2", "Bread", "Bakery", batch("b2", 0))},
		"c": {item("i3", "Eggs", "Dairy", batch("b3", 0))},
	}}
	d := newRecordingDispatcher()

	result, err := NewJob(tenants, inv, &stubPreferences{}, selector, d, 2, logger.NewNopLogger()).Run(context.Background(), KindDaily)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-14", result.Period)
	require.Equal(t, 3, result.Dispatched)
	for _, id := range []string{"a", "b", "c"} {
		alert := d.daily[id]
		require.NotNil(t, alert, id)
		assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), alert.Date, id)
		require.Len(t, alert.Alerts, 1, id)
		assert.Equal(t, 0, alert.Alerts[0].DaysUntil, id)
		assert.Equal(t, expiry.StatusUrgent, alert.Alerts[0].Status, id)
	}
}

func TestJob_TenantListFailure(t *testing.T) {
	job := newTestJob(&stubTenants{err: errors.New("db down")}, &stubInventory{}, &stubPreferences{}, newRecordingDispatcher())
	_, err := job.Run(context.Background(), KindDaily)
	assert.Error(t, err)
}

func TestJob_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tenants := &stubTenants{tenants: []*subject.Subject{tenantN("a")}}
	job := newTestJob(tenants, &stubInventory{}, &stubPreferences{}, newRecordingDispatcher())

	_, err := job.Run(ctx, KindDaily)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("weekly")
	require.NoError(t, err)
	assert.Equal(t, KindWeekly, k)

	_, err = ParseKind("hourly")
	assert.Error(t, err)
}
