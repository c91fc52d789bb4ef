// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/config"
	"shelfwatch/internal/shared/logger"
)

const (
	DefaultDailyCron  = "0 8 * * *"
	DefaultWeeklyCron = "0 9 * * 1"

	notificationRunTimeout = 30 * time.Minute
)

// NotificationRunner is satisfied by notification.Job.
type NotificationRunner interface {
	Run(ctx context.Context, kind notification.Kind) (*notification.RunResult, error)
}

// SchedulerManager owns the single gocron scheduler of the worker process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager evaluates cron expressions in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Notification Jobs (cron-based)
// ========================================

// RegisterNotificationJobs registers the daily alert and weekly report runs.
// Empty cron expressions fall back to 08:00 daily and Monday 09:00.
func (m *SchedulerManager) RegisterNotificationJobs(runner NotificationRunner, cfg config.NotificationConfig) error {
	dailyCron := cfg.DailyCron
	if dailyCron == "" {
		dailyCron = DefaultDailyCron
	}
	weeklyCron := cfg.WeeklyCron
	if weeklyCron == "" {
		weeklyCron = DefaultWeeklyCron
	}

	if err := m.registerNotificationJob(runner, notification.KindDaily, dailyCron); err != nil {
		return err
	}
	if err := m.registerNotificationJob(runner, notification.KindWeekly, weeklyCron); err != nil {
		return err
	}

	m.logger.Infow("registered notification jobs",
		"daily_cron", dailyCron,
		"weekly_cron", weeklyCron,
		"timezone", biztime.Location().String(),
	)
	return nil
}

func (m *SchedulerManager) registerNotificationJob(runner NotificationRunner, kind notification.Kind, cron string) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cron, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), notificationRunTimeout)
			defer cancel()
			m.runNotifications(ctx, runner, kind)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", string(kind)),
		gocron.WithName("notification-"+string(kind)),
	)
	return err
}

func (m *SchedulerManager) runNotifications(ctx context.Context, runner NotificationRunner, kind notification.Kind) {
	m.logger.Debugw("notification run started", "kind", kind)

	result, err := runner.Run(ctx, kind)
	if err != nil {
		// Don't log error if context was cancelled (graceful shutdown)
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("notification run failed", "kind", kind, "error", err)
		return
	}

	if len(result.Errors) > 0 {
		m.logger.Warnw("notification run completed with tenant errors",
			"kind", kind,
			"period", result.Period,
			"dispatched", result.Dispatched,
			"failed", len(result.Errors),
			"duration", result.Duration,
		)
		return
	}

	m.logger.Infow("notification run completed",
		"kind", kind,
		"period", result.Period,
		"tenants", result.Tenants,
		"dispatched", result.Dispatched,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
