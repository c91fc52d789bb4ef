package mappers

import (
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/infrastructure/persistence/models"
	"shelfwatch/internal/shared/mapper"
)

func ProductToEntity(m *models.ProductModel) *inventory.Item {
	item := &inventory.Item{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		Category:  m.Category,
		Supplier:  m.Supplier,
		Location:  m.Location,
		Notes:     m.Notes,
		Barcode:   m.Barcode,
		Batches:   make([]inventory.Batch, 0, len(m.Batches)),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, b := range m.Batches {
		item.Batches = append(item.Batches, inventory.Batch{
			ID:          b.ID,
			ItemID:      b.ProductID,
			BatchNumber: b.BatchNumber,
			ExpiryDate:  b.ExpiryDate,
			Quantity:    b.Quantity,
		})
	}
	return item
}

func ProductsToEntities(ms []*models.ProductModel) []*inventory.Item {
	return mapper.MapSlicePtrSkipNil(ms, ProductToEntity)
}

func ProductToModel(item *inventory.Item) *models.ProductModel {
	m := &models.ProductModel{
		ID:        item.ID,
		TenantID:  item.TenantID,
		Name:      item.Name,
		Category:  item.Category,
		Supplier:  item.Supplier,
		Location:  item.Location,
		Notes:     item.Notes,
		Barcode:   item.Barcode,
		Batches:   make([]models.ProductBatchModel, 0, len(item.Batches)),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	for _, b := range item.Batches {
		m.Batches = append(m.Batches, models.ProductBatchModel{
			ID:          b.ID,
			ProductID:   item.ID,
			BatchNumber: b.BatchNumber,
			ExpiryDate:  b.ExpiryDate,
			Quantity:    b.Quantity,
		})
	}
	return m
}

func PreferenceToEntity(m *models.NotificationPreferenceModel) *inventory.NotificationPreference {
	return &inventory.NotificationPreference{
		TenantID:            m.TenantID,
		DailyAlertsEnabled:  m.DailyAlertsEnabled,
		AlertThresholdDays:  m.AlertThresholdDays,
		WeeklyReportEnabled: m.WeeklyReportEnabled,
	}
}

func PreferenceToModel(p *inventory.NotificationPreference) *models.NotificationPreferenceModel {
	return &models.NotificationPreferenceModel{
		TenantID:            p.TenantID,
		DailyAlertsEnabled:  p.DailyAlertsEnabled,
		AlertThresholdDays:  p.AlertThresholdDays,
		WeeklyReportEnabled: p.WeeklyReportEnabled,
	}
}
