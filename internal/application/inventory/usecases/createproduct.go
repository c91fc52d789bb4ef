package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shelfwatch/internal/application/inventory/dto"
	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/domain/inventory"
	apperrors "shelfwatch/internal/shared/errors"
	"shelfwatch/internal/shared/id"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// CreateProductUseCase stores a new item with at least one batch.
type CreateProductUseCase struct {
	itemRepo inventory.Repository
	engine   *expiry.Engine
	logger   logger.Interface
}

func NewCreateProductUseCase(itemRepo inventory.Repository, engine *expiry.Engine, logger logger.Interface) *CreateProductUseCase {
	return &CreateProductUseCase{
		itemRepo: itemRepo,
		engine:   engine,
		logger:   logger,
	}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, tenantID string, request dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uc.logger.Infow("executing create product", "tenant_id", tenantID, "name", request.Name)

	if tenantID == "" {
		return nil, apperrors.NewUnauthorizedError("tenant is required")
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, err
	}

	productID, err := id.NewProductID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product id: %w", err)
	}

	item := &inventory.Item{
		ID:       productID,
		TenantID: tenantID,
		Name:     strings.TrimSpace(request.Name),
		Category: strings.TrimSpace(request.Category),
		Supplier: request.Supplier,
		Location: request.Location,
		Notes:    request.Notes,
		Barcode:  request.Barcode,
		Batches:  make([]inventory.Batch, 0, len(request.Batches)),
	}
	for _, b := range request.Batches {
		if _, err := uc.engine.ParseDate(b.ExpiryDate); err != nil {
			return nil, apperrors.NewValidationError("invalid expiry date", err.Error())
		}
		batchID, err := id.NewBatchID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate batch id: %w", err)
		}
		item.Batches = append(item.Batches, inventory.Batch{
			ID:          batchID,
			ItemID:      productID,
			BatchNumber: strings.TrimSpace(b.BatchNumber),
			ExpiryDate:  b.ExpiryDate,
			Quantity:    b.Quantity,
		})
	}

	if err := item.Validate(); err != nil {
		if errors.Is(err, inventory.ErrNegativeQuantity) || errors.Is(err, inventory.ErrEmptyName) || errors.Is(err, inventory.ErrNoBatches) {
			return nil, apperrors.NewValidationError("invalid product", err.Error())
		}
		return nil, err
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		uc.logger.Errorw("failed to persist product", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	uc.logger.Infow("product created", "tenant_id", tenantID, "product_id", item.ID, "batches", len(item.Batches))
	return dto.ToProductResponse(item, uc.engine), nil
}
