package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/infrastructure/persistence/mappers"
	"shelfwatch/internal/infrastructure/persistence/models"
	shareddb "shelfwatch/internal/shared/db"
)

// ProductRepositoryImpl scopes every query by tenant.
type ProductRepositoryImpl struct {
	db *gorm.DB
	tm *shareddb.TransactionManager
}

func NewProductRepository(db *gorm.DB) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{db: db, tm: shareddb.NewTransactionManager(db)}
}

var _ inventory.Repository = (*ProductRepositoryImpl)(nil)

func preloadBatches(tx *gorm.DB) *gorm.DB {
	return tx.Order("expiry_date ASC, id ASC")
}

func (r *ProductRepositoryImpl) ListByTenant(ctx context.Context, tenantID string) ([]*inventory.Item, error) {
	var rows []*models.ProductModel
	err := shareddb.GetTxFromContext(ctx, r.db).
		Preload("Batches", preloadBatches).
		Where("tenant_id = ?", tenantID).
		Order("name ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return mappers.ProductsToEntities(rows), nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, tenantID, itemID string) (*inventory.Item, error) {
	var model models.ProductModel
	err := shareddb.GetTxFromContext(ctx, r.db).
		Preload("Batches", preloadBatches).
		Where("id = ? AND tenant_id = ?", itemID, tenantID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return mappers.ProductToEntity(&model), nil
}

// Create inserts the product and its batches in one statement group.
func (r *ProductRepositoryImpl) Create(ctx context.Context, item *inventory.Item) error {
	model := mappers.ProductToModel(item)
	if err := shareddb.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete removes batches explicitly so the cascade holds on engines that
// do not enforce foreign keys.
func (r *ProductRepositoryImpl) Delete(ctx context.Context, tenantID, itemID string) error {
	return r.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := shareddb.GetTxFromContext(ctx, r.db)

		result := tx.Where("id = ? AND tenant_id = ?", itemID, tenantID).Delete(&models.ProductModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("product_id = ?", itemID).Delete(&models.ProductBatchModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete batches: %w", err)
		}
		return nil
	})
}
