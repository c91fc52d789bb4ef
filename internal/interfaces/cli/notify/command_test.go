package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shelfwatch/internal/application/notification"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/infrastructure/cache"
	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/infrastructure/migration"
	"shelfwatch/internal/infrastructure/repository"
	"shelfwatch/internal/shared/biztime"
	sharedConfig "shelfwatch/internal/shared/config"
	"shelfwatch/internal/shared/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migration.NewAutoMigrateStrategy().Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestNewJob_DryRun(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, repository.NewSubjectRepository(db).Upsert(ctx, &subject.Subject{ID: "tenant-1", Email: "shop@example.com"}))
	require.NoError(t, repository.NewSubjectRepository(db).Upsert(ctx, &subject.Subject{ID: "tenant-2", Email: "empty@example.com"}))

	today := time.Now().In(biztime.Location()).Format(biztime.DateLayout)
	require.NoError(t, repository.NewProductRepository(db).Create(ctx, &inventory.Item{
		ID:       "prod-1",
		TenantID: "tenant-1",
		Name:     "Milk",
		Batches:  []inventory.Batch{{ID: "batch-1", ExpiryDate: today, Quantity: 2}},
	}))

	cfg := &config.Config{
		Server:       sharedConfig.ServerConfig{BaseURL: "https://app.example.com"},
		Notification: sharedConfig.NotificationConfig{Concurrency: 2, DigestLimit: 5},
	}

	var out bytes.Buffer
	job, err := NewJob(cfg, db, nil, &out, logger.NewNopLogger())
	require.NoError(t, err)

	result, err := job.Run(ctx, notification.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tenants)
	assert.Equal(t, 1, result.Dispatched)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	assert.Contains(t, out.String(), "[dry-run] daily")
	assert.Contains(t, out.String(), "shop@example.com")
	assert.NotContains(t, out.String(), "empty@example.com")
}

// seedExpiringToday stores n tenants with one batch expiring today each.
func seedExpiringToday(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	ctx := context.Background()
	today := time.Now().In(biztime.Location()).Format(biztime.DateLayout)
	for i := 1; i <= n; i++ {
		tenantID := fmt.Sprintf("tenant-%d", i)
		require.NoError(t, repository.NewSubjectRepository(db).Upsert(ctx, &subject.Subject{ID: tenantID, Email: tenantID + "@example.com"}))
		require.NoError(t, repository.NewProductRepository(db).Create(ctx, &inventory.Item{
			ID:       fmt.Sprintf("prod-%d", i),
			TenantID: tenantID,
			Name:     "Milk",
			Batches:  []inventory.Batch{{ID: fmt.Sprintf("batch-%d", i), ExpiryDate: today, Quantity: 1}},
		}))
	}
}

func TestNewJob_DryRunConcurrentTenants(t *testing.T) {
	db := setupDB(t)
	seedExpiringToday(t, db, 8)

	cfg := &config.Config{Notification: sharedConfig.NotificationConfig{Concurrency: 4, DigestLimit: 5}}
	var out bytes.Buffer
	job, err := NewJob(cfg, db, nil, &out, logger.NewNopLogger())
	require.NoError(t, err)

	result, err := job.Run(context.Background(), notification.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Dispatched)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[dry-run] daily "), line)
	}
	for i := 1; i <= 8; i++ {
		assert.Contains(t, out.String(), fmt.Sprintf(" tenant-%d@example.com: ", i))
	}
}

func TestNewJob_DryRunMarksAlreadySent(t *testing.T) {
	db := setupDB(t)
	seedExpiringToday(t, db, 2)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	period := biztime.DateKey(time.Now(), biztime.Location())
	claimed, err := cache.NewDispatchLedger(client, 0).TryClaim(context.Background(), string(notification.KindDaily), "tenant-1", period)
	require.NoError(t, err)
	require.True(t, claimed)

	var out bytes.Buffer
	job, err := NewJob(&config.Config{}, db, client, &out, logger.NewNopLogger())
	require.NoError(t, err)
	result, err := job.Run(context.Background(), notification.KindDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Dispatched)

	var first, second string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		switch {
		case strings.Contains(line, "tenant-1@"):
			first = line
		case strings.Contains(line, "tenant-2@"):
			second = line
		}
	}
	assert.True(t, strings.HasSuffix(first, "(already sent)"), first)
	assert.NotContains(t, second, "already sent")
	assert.Contains(t, second, period)

	// A dry run never claims anything itself.
	assert.False(t, mr.Exists("shelfwatch:notify:daily:tenant-2:"+period))
}

func TestNewJob_BrokenTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily.md.tmpl"), []byte("{{ .Broken "), 0o600))

	cfg := &config.Config{Notification: sharedConfig.NotificationConfig{TemplateDir: dir}}
	_, err := NewJob(cfg, setupDB(t), nil, &bytes.Buffer{}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestPrintResult(t *testing.T) {
	result := &notification.RunResult{
		Kind:       notification.KindWeekly,
		Period:     "2026-W42",
		Tenants:    3,
		Dispatched: 1,
		Skipped:    1,
		Duration:   1500 * time.Millisecond,
		Errors: []*notification.TenantError{
			{TenantID: "tenant-9", Err: errors.New("smtp down"), Message: "smtp down"},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, result, "table"))
		assert.Contains(t, buf.String(), "DISPATCHED")
		assert.Contains(t, buf.String(), "2026-W42")
		assert.Contains(t, buf.String(), "tenant-9")
		assert.Contains(t, buf.String(), "smtp down")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, result, "json"))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "weekly", decoded["kind"])
		assert.EqualValues(t, 3, decoded["tenants"])
	})
}
