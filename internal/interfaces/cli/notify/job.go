// Package notify wires and runs the daily alert and weekly report jobs.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/infrastructure/cache"
	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/infrastructure/email"
	"shelfwatch/internal/infrastructure/repository"
	"shelfwatch/internal/infrastructure/template"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/services/markdown"
)

// NewJob builds the notification job over the database, the Redis dispatch
// ledger and SMTP. A non-nil dryRun replaces delivery: rendered subjects are
// written there and nothing is claimed or sent. In dry-run mode redisClient
// may be nil; when set, digests already sent this period are marked.
func NewJob(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dryRun io.Writer, log logger.Interface) (*notification.Job, error) {
	templates := template.NewDigestTemplateLoader(cfg.Notification.TemplateDir, log.Named("templates"))
	if err := templates.Load(); err != nil {
		return nil, fmt.Errorf("failed to load digest templates: %w", err)
	}
	renderer := email.NewDigestRenderer(templates, markdown.NewMarkdownService(), cfg.Server.BaseURL)

	var dispatcher notification.Dispatcher
	if dryRun != nil {
		printer := &printDispatcher{renderer: renderer, out: dryRun, logger: log.Named("dry-run")}
		if redisClient != nil {
			printer.ledger = cache.NewDispatchLedger(redisClient, 0)
		}
		dispatcher = printer
	} else {
		ledger := cache.NewDispatchLedger(redisClient, 0)
		sender := email.NewSMTPEmailService(cfg.Email)
		dispatcher = email.NewNotificationDispatcher(sender, renderer, ledger, log.Named("dispatcher"))
	}

	engine := expiry.NewEngine(biztime.Location())
	selector := notification.NewSelector(engine, log.Named("selector"), cfg.Notification.DigestLimit)

	return notification.NewJob(
		repository.NewSubjectRepository(db),
		repository.NewProductRepository(db),
		repository.NewPreferenceRepository(db),
		selector,
		dispatcher,
		cfg.Notification.Concurrency,
		log.Named("job"),
	), nil
}

// printDispatcher renders each digest and prints its subject line. Job.Run
// calls it from several goroutines, so writes to out are serialized.
type printDispatcher struct {
	renderer *email.DigestRenderer
	ledger   *cache.DispatchLedger
	logger   logger.Interface

	mu  sync.Mutex
	out io.Writer
}

func (p *printDispatcher) DispatchDaily(ctx context.Context, period string, alert *dto.DailyAlert) (bool, error) {
	if notification.IsEmpty(alert) {
		return false, nil
	}
	msg, err := p.renderer.RenderDaily(alert)
	if err != nil {
		return false, err
	}
	p.print(ctx, notification.KindDaily, period, alert.Recipient, msg.Subject)
	return true, nil
}

func (p *printDispatcher) DispatchWeekly(ctx context.Context, period string, report *dto.WeeklyReport) (bool, error) {
	if report == nil {
		return false, nil
	}
	msg, err := p.renderer.RenderWeekly(report)
	if err != nil {
		return false, err
	}
	p.print(ctx, notification.KindWeekly, period, report.Recipient, msg.Subject)
	return true, nil
}

func (p *printDispatcher) print(ctx context.Context, kind notification.Kind, period string, to dto.Recipient, subject string) {
	marker := ""
	if p.ledger != nil {
		sent, err := p.ledger.WasDispatched(ctx, string(kind), to.TenantID, period)
		if err != nil {
			p.logger.Warnw("failed to check dispatch ledger",
				"kind", kind,
				"tenant_id", to.TenantID,
				"error", err,
			)
		} else if sent {
			marker = " (already sent)"
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[dry-run] %s %s %s: %s%s\n", kind, period, to.Email, subject, marker)
}
