// Package notification selects the batches that go into daily alerts and
// weekly reports and drives the per-tenant notification job.
package notification

import (
	"sort"
	"strings"
	"time"

	"shelfwatch/internal/application/notification/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/constants"
	"shelfwatch/internal/shared/logger"
)

// Selector turns one tenant's inventory into notification payloads. It
// performs no I/O and no mutation, so calling it twice for the same
// tenant and instant yields the same result.
type Selector struct {
	engine      *expiry.Engine
	logger      logger.Interface
	digestLimit int
}

func NewSelector(engine *expiry.Engine, log logger.Interface, digestLimit int) *Selector {
	if digestLimit <= 0 {
		digestLimit = constants.DefaultDigestLimit
	}
	return &Selector{engine: engine, logger: log, digestLimit: digestLimit}
}

// Today returns the calendar day callers should pass to the Build methods.
func (s *Selector) Today() time.Time {
	return s.engine.Today()
}

// flatten evaluates every batch of every item against today. Batches whose
// expiry date cannot be parsed are logged and skipped.
func (s *Selector) flatten(tenantID string, items []*inventory.Item, today time.Time) []dto.BatchAlert {
	out := make([]dto.BatchAlert, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = constants.DefaultCategory
		}
		for _, b := range item.Batches {
			eval, date, err := s.engine.EvaluateStringOn(today, b.ExpiryDate)
			if err != nil {
				s.logger.Warnw("skipping batch with malformed expiry date",
					"tenant_id", tenantID,
					"item_id", item.ID,
					"batch_id", b.ID,
					"expiry_date", b.ExpiryDate,
					"error", err,
				)
				continue
			}
			out = append(out, dto.BatchAlert{
				ItemID:      item.ID,
				ItemName:    item.Name,
				Category:    category,
				BatchID:     b.ID,
				BatchNumber: b.BatchNumber,
				Quantity:    b.Quantity,
				ExpiryDate:  date,
				DaysUntil:   eval.DaysUntil,
				Status:      eval.Status,
			})
		}
	}
	return out
}

func recipientOf(tenant *subject.Subject) dto.Recipient {
	return dto.Recipient{TenantID: tenant.ID, Email: tenant.Email, Name: tenant.DisplayName()}
}

// BuildDailyAlert keeps every batch with daysUntil <= threshold, expired
// ones included, most urgent first. today is midnight in the engine
// timezone, normally the value of Today taken once per run.
func (s *Selector) BuildDailyAlert(tenant *subject.Subject, items []*inventory.Item, pref inventory.NotificationPreference, today time.Time) *dto.DailyAlert {
	alerts := make([]dto.BatchAlert, 0)
	for _, a := range s.flatten(tenant.ID, items, today) {
		if a.DaysUntil <= pref.AlertThresholdDays {
			alerts = append(alerts, a)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysUntil != alerts[j].DaysUntil {
			return alerts[i].DaysUntil < alerts[j].DaysUntil
		}
		return alertTieBreak(alerts[i], alerts[j])
	})

	return &dto.DailyAlert{
		Recipient:     recipientOf(tenant),
		Date:          today,
		ThresholdDays: pref.AlertThresholdDays,
		Alerts:        alerts,
	}
}

// BuildWeeklyReport caps the two display lists at the digest limit while
// the statistics count every batch.
func (s *Selector) BuildWeeklyReport(tenant *subject.Subject, items []*inventory.Item, today time.Time) *dto.WeeklyReport {
	expired := make([]dto.BatchAlert, 0)
	soon := make([]dto.BatchAlert, 0)
	byCategory := make(map[string]int)

	products := 0
	for _, item := range items {
		if item != nil {
			products++
		}
	}

	for _, a := range s.flatten(tenant.ID, items, today) {
		byCategory[a.Category]++
		switch {
		case a.Status == expiry.StatusExpired:
			expired = append(expired, a)
		case a.Status.IsExpiringSoon():
			soon = append(soon, a)
		}
	}

	// Most recently expired first, i.e. the largest (closest to zero) day count.
	sort.SliceStable(expired, func(i, j int) bool {
		if expired[i].DaysUntil != expired[j].DaysUntil {
			return expired[i].DaysUntil > expired[j].DaysUntil
		}
		return alertTieBreak(expired[i], expired[j])
	})
	sort.SliceStable(soon, func(i, j int) bool {
		if soon[i].DaysUntil != soon[j].DaysUntil {
			return soon[i].DaysUntil < soon[j].DaysUntil
		}
		return alertTieBreak(soon[i], soon[j])
	})

	categories := make([]dto.CategoryCount, 0, len(byCategory))
	for name, count := range byCategory {
		categories = append(categories, dto.CategoryCount{Category: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})

	return &dto.WeeklyReport{
		Recipient:       recipientOf(tenant),
		Date:            today,
		RecentlyExpired: capList(expired, s.digestLimit),
		ExpiringSoon:    capList(soon, s.digestLimit),
		Stats: dto.WeeklyStats{
			TotalProducts:     products,
			ExpiredCount:      len(expired),
			ExpiringSoonCount: len(soon),
			Categories:        categories,
		},
	}
}

func alertTieBreak(a, b dto.BatchAlert) bool {
	if a.ItemName != b.ItemName {
		return a.ItemName < b.ItemName
	}
	if a.BatchNumber != b.BatchNumber {
		return a.BatchNumber < b.BatchNumber
	}
	return a.BatchID < b.BatchID
}

func capList(list []dto.BatchAlert, limit int) []dto.BatchAlert {
	if len(list) <= limit {
		return list
	}
	return list[:limit:limit]
}

// IsEmpty reports whether a daily alert has nothing to send.
func IsEmpty(alert *dto.DailyAlert) bool {
	return alert == nil || len(alert.Alerts) == 0
}

// PeriodKey identifies the notification period a run belongs to. today
// is already midnight in the engine timezone, so its own location is used.
func PeriodKey(kind Kind, today time.Time) string {
	if kind == KindWeekly {
		return biztime.WeekKey(today, today.Location())
	}
	return biztime.DateKey(today, today.Location())
}
