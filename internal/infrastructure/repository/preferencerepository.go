package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/infrastructure/persistence/mappers"
	"shelfwatch/internal/infrastructure/persistence/models"
	shareddb "shelfwatch/internal/shared/db"
)

type PreferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepositoryImpl {
	return &PreferenceRepositoryImpl{db: db}
}

var _ inventory.PreferenceRepository = (*PreferenceRepositoryImpl)(nil)

func (r *PreferenceRepositoryImpl) GetByTenant(ctx context.Context, tenantID string) (*inventory.NotificationPreference, error) {
	var model models.NotificationPreferenceModel
	if err := shareddb.GetTxFromContext(ctx, r.db).Where("tenant_id = ?", tenantID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}
	return mappers.PreferenceToEntity(&model), nil
}

// Save upserts on tenant_id. Booleans are written even when false.
func (r *PreferenceRepositoryImpl) Save(ctx context.Context, pref *inventory.NotificationPreference) error {
	model := mappers.PreferenceToModel(pref)
	err := shareddb.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"daily_alerts_enabled", "alert_threshold_days", "weekly_report_enabled", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save notification preference: %w", err)
	}
	return nil
}
