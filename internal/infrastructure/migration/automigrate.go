package migration

import (
	"shelfwatch/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []any {
	return []any{
		&models.SubjectModel{},
		&models.RoleAssignmentModel{},
		&models.ProductModel{},
		&models.ProductBatchModel{},
		&models.NotificationPreferenceModel{},
	}
}
