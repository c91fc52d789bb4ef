package usecases

import (
	"context"
	"fmt"
	"sort"

	"shelfwatch/internal/application/inventory/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/domain/inventory"
	"shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/logger"
)

// ListProductsUseCase returns a tenant's products with live batch statuses.
type ListProductsUseCase struct {
	itemRepo inventory.Repository
	engine   *expiry.Engine
	logger   logger.Interface
}

func NewListProductsUseCase(itemRepo inventory.Repository, engine *expiry.Engine, logger logger.Interface) *ListProductsUseCase {
	return &ListProductsUseCase{
		itemRepo: itemRepo,
		engine:   engine,
		logger:   logger,
	}
}

// Execute lists products by name.
func (uc *ListProductsUseCase) Execute(ctx context.Context, tenantID string) ([]*dto.ProductResponse, error) {
	if tenantID == "" {
		return nil, errors.NewUnauthorizedError("tenant is required")
	}

	items, err := uc.itemRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to list products", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*dto.ProductResponse, 0, len(items))
	for _, item := range items {
		products = append(products, dto.ToProductResponse(item, uc.engine))
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}
