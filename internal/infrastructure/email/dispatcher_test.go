package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/infrastructure/cache"
	"shelfwatch/internal/infrastructure/template"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/services/markdown"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestDispatcher(t *testing.T, sender Sender) *NotificationDispatcher {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.NewNopLogger()
	loader := template.NewDigestTemplateLoader("", log)
	require.NoError(t, loader.Load())
	renderer := NewDigestRenderer(loader, markdown.NewMarkdownService(), "https://app.example/")
	return NewNotificationDispatcher(sender, renderer, cache.NewDispatchLedger(client, time.Hour), log)
}

var today = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

func sampleAlert() *dto.DailyAlert {
	return &dto.DailyAlert{
		Recipient:     dto.Recipient{TenantID: "tenant-1", Email: "shop@example.com", Name: "Corner Shop"},
		Date:          today,
		ThresholdDays: 7,
		Alerts: []dto.BatchAlert{
			{ItemID: "prd_1", ItemName: "Yogurt", Category: "Dairy", BatchID: "bat_1", Quantity: 2, ExpiryDate: today.AddDate(0, 0, -1), DaysUntil: -1, Status: expiry.StatusExpired},
			{ItemID: "prd_2", ItemName: "Milk", Category: "Dairy", BatchID: "bat_2", Quantity: 6, ExpiryDate: today.AddDate(0, 0, 2), DaysUntil: 2, Status: expiry.StatusUrgent},
		},
	}
}

func TestDispatchDaily_SendsOncePerPeriod(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(t, sender)
	ctx := context.Background()

	sent, err := d.DispatchDaily(ctx, "2026-10-14", sampleAlert())
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = d.DispatchDaily(ctx, "2026-10-14", sampleAlert())
	require.NoError(t, err)
	assert.False(t, sent)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "shop@example.com", msg.To)
	assert.Equal(t, "1 expired, 1 expiring within 7 day(s)", msg.Subject)
	assert.Contains(t, msg.PlainBody, "Yogurt")
	assert.Contains(t, msg.PlainBody, "1 day ago")
	assert.Contains(t, msg.PlainBody, "https://app.example/settings")
	assert.Contains(t, msg.HTMLBody, "<td>Milk</td>")
}

func TestDispatchDaily_EmptyAlertNotSent(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(t, sender)

	alert := sampleAlert()
	alert.Alerts = nil
	sent, err := d.DispatchDaily(context.Background(), "2026-10-14", alert)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.sent)
}

func TestDispatchDaily_SendFailureReleasesClaim(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp unavailable")}
	d := newTestDispatcher(t, sender)
	ctx := context.Background()

	_, err := d.DispatchDaily(ctx, "2026-10-14", sampleAlert())
	require.Error(t, err)

	sender.err = nil
	sent, err := d.DispatchDaily(ctx, "2026-10-14", sampleAlert())
	require.NoError(t, err)
	assert.True(t, sent, "retry after a failed send goes out")
}

func TestDispatch_MissingRecipient(t *testing.T) {
	d := newTestDispatcher(t, &fakeSender{})

	alert := sampleAlert()
	alert.Recipient.Email = ""
	_, err := d.DispatchDaily(context.Background(), "2026-10-14", alert)
	assert.ErrorIs(t, err, errNoRecipient)
}

func TestDispatchWeekly(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(t, sender)

	report := &dto.WeeklyReport{
		Recipient:    dto.Recipient{TenantID: "tenant-1", Email: "shop@example.com", Name: "Corner Shop"},
		Date:         today,
		ExpiringSoon: []dto.BatchAlert{{ItemName: "Cheese", BatchNumber: "C-1", Quantity: 3, ExpiryDate: today.AddDate(0, 0, 12), DaysUntil: 12, Status: expiry.StatusWarning}},
		Stats: dto.WeeklyStats{
			TotalProducts:     4,
			ExpiringSoonCount: 1,
			Categories:        []dto.CategoryCount{{Category: "Dairy", Count: 4}},
		},
	}

	sent, err := d.DispatchWeekly(context.Background(), "2026-W42", report)
	require.NoError(t, err)
	assert.True(t, sent)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Weekly inventory report, week of 2026-10-14", msg.Subject)
	assert.Contains(t, msg.PlainBody, "| Cheese | C-1 | 3 | 2026-10-26 (in 12 days) |")
	assert.NotContains(t, msg.PlainBody, "Recently expired")
	assert.Contains(t, msg.PlainBody, "| Dairy | 4 |")
	assert.Contains(t, msg.PlainBody, "https://app.example/dashboard")
}
