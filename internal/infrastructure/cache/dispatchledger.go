package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dispatchKeyPrefix = "shelfwatch:notify:"

// DefaultDispatchTTL outlives the longest period (one ISO week).
const DefaultDispatchTTL = 8 * 24 * time.Hour

// DispatchLedger records which tenant was already notified for a period so
// a rerun of the same job never double-sends.
type DispatchLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDispatchLedger(client *redis.Client, ttl time.Duration) *DispatchLedger {
	if ttl <= 0 {
		ttl = DefaultDispatchTTL
	}
	return &DispatchLedger{client: client, ttl: ttl}
}

// Format: shelfwatch:notify:{kind}:{tenant_id}:{period}
func (l *DispatchLedger) buildKey(kind, tenantID, period string) string {
	return fmt.Sprintf("%s%s:%s:%s", dispatchKeyPrefix, kind, tenantID, period)
}

// TryClaim atomically reserves the (kind, tenant, period) slot with SETNX.
// It returns false when another run already claimed it.
func (l *DispatchLedger) TryClaim(ctx context.Context, kind, tenantID, period string) (bool, error) {
	acquired, err := l.client.SetNX(ctx, l.buildKey(kind, tenantID, period), time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim dispatch slot: %w", err)
	}
	return acquired, nil
}

// Release frees a claimed slot after a failed send so a retry can go out.
func (l *DispatchLedger) Release(ctx context.Context, kind, tenantID, period string) error {
	if err := l.client.Del(ctx, l.buildKey(kind, tenantID, period)).Err(); err != nil {
		return fmt.Errorf("failed to release dispatch slot: %w", err)
	}
	return nil
}

func (l *DispatchLedger) WasDispatched(ctx context.Context, kind, tenantID, period string) (bool, error) {
	n, err := l.client.Exists(ctx, l.buildKey(kind, tenantID, period)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dispatch slot: %w", err)
	}
	return n > 0, nil
}
