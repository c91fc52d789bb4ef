package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/goroutine"
	"shelfwatch/internal/shared/logger"
)

type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// ParseKind accepts "daily" or "weekly".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDaily, KindWeekly:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", s)
	}
}

type TenantLister interface {
	List(ctx context.Context) ([]*subject.Subject, error)
}

type InventoryReader interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*inventory.Item, error)
}

type PreferenceReader interface {
	GetByTenant(ctx context.Context, tenantID string) (*inventory.NotificationPreference, error)
}

// Dispatcher owns delivery and the "already sent this period" ledger. The
// bool result is false when the payload was skipped as a duplicate.
type Dispatcher interface {
	DispatchDaily(ctx context.Context, period string, alert *dto.DailyAlert) (bool, error)
	DispatchWeekly(ctx context.Context, period string, report *dto.WeeklyReport) (bool, error)
}

// TenantError records one tenant's failure without failing the run.
type TenantError struct {
	TenantID string `json:"tenant_id"`
	Err      error  `json:"-"`
	Message  string `json:"error"`
}

func (e *TenantError) Error() string {
	return fmt.Sprintf("tenant %s: %v", e.TenantID, e.Err)
}

func (e *TenantError) Unwrap() error { return e.Err }

// RunResult summarises one job run.
type RunResult struct {
	Kind       Kind           `json:"kind"`
	Period     string         `json:"period"`
	StartedAt  time.Time      `json:"started_at"`
	Duration   time.Duration  `json:"duration"`
	Tenants    int            `json:"tenants"`
	Dispatched int            `json:"dispatched"`
	Skipped    int            `json:"skipped"`
	Errors     []*TenantError `json:"errors,omitempty"`
}

// Job runs the selector for every tenant and hands the payloads to the
// dispatcher. Tenants are processed concurrently and in isolation.
type Job struct {
	tenants     TenantLister
	inventory   InventoryReader
	preferences PreferenceReader
	selector    *Selector
	dispatcher  Dispatcher
	concurrency int
	logger      logger.Interface
}

func NewJob(
	tenants TenantLister,
	inv InventoryReader,
	prefs PreferenceReader,
	selector *Selector,
	dispatcher Dispatcher,
	concurrency int,
	log logger.Interface,
) *Job {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Job{
		tenants:     tenants,
		inventory:   inv,
		preferences: prefs,
		selector:    selector,
		dispatcher:  dispatcher,
		concurrency: concurrency,
		logger:      log,
	}
}

// Run returns an error only when the tenant list cannot be read or ctx is
// cancelled; per-tenant failures are collected in RunResult.Errors.
func (j *Job) Run(ctx context.Context, kind Kind) (*RunResult, error) {
	today := j.selector.Today()
	result := &RunResult{
		Kind:      kind,
		Period:    PeriodKey(kind, today),
		StartedAt: time.Now().UTC(),
		Errors:    make([]*TenantError, 0),
	}

	tenants, err := j.tenants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	result.Tenants = len(tenants)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)

	for _, tenant := range tenants {
		if tenant == nil {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			name := fmt.Sprintf("notify-%s-%s", kind, tenant.ID)
			var sent bool
			runErr := goroutine.Run(j.logger, name, func() error {
				var err error
				sent, err = j.runTenant(gctx, kind, today, result.Period, tenant)
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case runErr != nil:
				j.logger.Errorw("notification failed for tenant",
					"kind", kind,
					"tenant_id", tenant.ID,
					"error", runErr,
				)
				result.Errors = append(result.Errors, &TenantError{TenantID: tenant.ID, Err: runErr, Message: runErr.Error()})
			case sent:
				result.Dispatched++
			default:
				result.Skipped++
			}
			// Tenant failures never cancel siblings.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	result.Duration = time.Since(result.StartedAt)

	j.logger.Infow("notification run completed",
		"kind", kind,
		"period", result.Period,
		"tenants", result.Tenants,
		"dispatched", result.Dispatched,
		"skipped", result.Skipped,
		"failed", len(result.Errors),
		"duration", result.Duration,
	)
	return result, nil
}

func (j *Job) runTenant(ctx context.Context, kind Kind, today time.Time, period string, tenant *subject.Subject) (bool, error) {
	pref, err := j.preferenceFor(ctx, tenant.ID)
	if err != nil {
		return false, err
	}

	switch kind {
	case KindDaily:
		if !pref.DailyAlertsEnabled {
			return false, nil
		}
	case KindWeekly:
		if !pref.WeeklyReportEnabled {
			return false, nil
		}
	default:
		return false, fmt.Errorf("unknown notification kind %q", kind)
	}

	items, err := j.inventory.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load inventory: %w", err)
	}

	if kind == KindDaily {
		alert := j.selector.BuildDailyAlert(tenant, items, pref, today)
		if IsEmpty(alert) {
			return false, nil
		}
		return j.dispatcher.DispatchDaily(ctx, period, alert)
	}

	report := j.selector.BuildWeeklyReport(tenant, items, today)
	if report.Stats.TotalProducts == 0 {
		return false, nil
	}
	return j.dispatcher.DispatchWeekly(ctx, period, report)
}

// preferenceFor falls back to the defaults when nothing is stored. A
// stored preference that fails validation is a tenant error.
func (j *Job) preferenceFor(ctx context.Context, tenantID string) (inventory.NotificationPreference, error) {
	stored, err := j.preferences.GetByTenant(ctx, tenantID)
	if err != nil {
		return inventory.NotificationPreference{}, fmt.Errorf("failed to load preference: %w", err)
	}
	if stored == nil {
		return inventory.DefaultPreference(tenantID), nil
	}
	if err := stored.Validate(); err != nil {
		return inventory.NotificationPreference{}, err
	}
	return *stored, nil
}

// IsPanic reports whether a tenant error came from a recovered panic.
func IsPanic(err error) bool {
	var pe *goroutine.PanicError
	return errors.As(err, &pe)
}
