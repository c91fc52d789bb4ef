package usecases

import (
	"context"
	"fmt"

	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
)

// DeleteProductUseCase removes an item and its batches.
type DeleteProductUseCase struct {
	itemRepo inventory.Repository
	logger   logger.Interface
}

func NewDeleteProductUseCase(itemRepo inventory.Repository, logger logger.Interface) *DeleteProductUseCase {
	return &DeleteProductUseCase{itemRepo: itemRepo, logger: logger}
}

// Execute returns not found for another tenant's product.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, tenantID, productID string) error {
	existing, err := uc.itemRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		uc.logger.Errorw("failed to load product", "tenant_id", tenantID, "product_id", productID, "error", err)
		return fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return errors.NewNotFoundError("product not found")
	}

	if err := uc.itemRepo.Delete(ctx, tenantID, productID); err != nil {
		uc.logger.Errorw("failed to delete product", "tenant_id", tenantID, "product_id", productID, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	uc.logger.Infow("product deleted", "tenant_id", tenantID, "product_id", productID)
	return nil
}
