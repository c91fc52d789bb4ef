package email

import (
	"context"
	"errors"
	"fmt"

	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// Ledger is satisfied by cache.DispatchLedger.
type Ledger interface {
	TryClaim(ctx context.Context, kind, tenantID, period string) (bool, error)
	Release(ctx context.Context, kind, tenantID, period string) error
}

var errNoRecipient = errors.New("tenant has no email address")

// NotificationDispatcher sends digests by email, at most once per tenant
// and period. A failed send releases its ledger claim so the next run
// retries it.
type NotificationDispatcher struct {
	sender   Sender
	renderer *DigestRenderer
	ledger   Ledger
	logger   logger.Interface
}

var _ notification.Dispatcher = (*NotificationDispatcher)(nil)

func NewNotificationDispatcher(sender Sender, renderer *DigestRenderer, ledger Ledger, log logger.Interface) *NotificationDispatcher {
	return &NotificationDispatcher{
		sender:   sender,
		renderer: renderer,
		ledger:   ledger,
		logger:   log,
	}
}

func (d *NotificationDispatcher) DispatchDaily(ctx context.Context, period string, alert *dto.DailyAlert) (bool, error) {
	if notification.IsEmpty(alert) {
		return false, nil
	}
	return d.dispatch(ctx, notification.KindDaily, period, alert.Recipient, func() (Message, error) {
		return d.renderer.RenderDaily(alert)
	})
}

func (d *NotificationDispatcher) DispatchWeekly(ctx context.Context, period string, report *dto.WeeklyReport) (bool, error) {
	if report == nil {
		return false, nil
	}
	return d.dispatch(ctx, notification.KindWeekly, period, report.Recipient, func() (Message, error) {
		return d.renderer.RenderWeekly(report)
	})
}

func (d *NotificationDispatcher) dispatch(
	ctx context.Context,
	kind notification.Kind,
	period string,
	to dto.Recipient,
	render func() (Message, error),
) (bool, error) {
	if to.Email == "" {
		return false, errNoRecipient
	}

	msg, err := render()
	if err != nil {
		return false, fmt.Errorf("failed to render %s digest: %w", kind, err)
	}

	claimed, err := d.ledger.TryClaim(ctx, string(kind), to.TenantID, period)
	if err != nil {
		return false, err
	}
	if !claimed {
		d.logger.Debugw("digest already sent for period",
			"kind", kind,
			"tenant_id", to.TenantID,
			"period", period,
		)
		return false, nil
	}

	if err := d.sender.Send(msg); err != nil {
		// Use a fresh context so a cancelled run still frees the slot.
		if releaseErr := d.ledger.Release(context.WithoutCancel(ctx), string(kind), to.TenantID, period); releaseErr != nil {
			d.logger.Errorw("failed to release dispatch slot after send failure",
				"kind", kind,
				"tenant_id", to.TenantID,
				"period", period,
				"error", releaseErr,
			)
		}
		return false, err
	}

	d.logger.Infow("digest sent",
		"kind", kind,
		"tenant_id", to.TenantID,
		"to", utils.MaskEmail(to.Email),
		"period", period,
	)
	return true, nil
}
