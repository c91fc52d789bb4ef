// Package inventory holds tenant-owned products, their dated batches and
// the tenant's notification preference.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNegativeQuantity  = errors.New("batch quantity must not be negative")
	ErrNoBatches         = errors.New("item must have at least one batch")
	ErrEmptyName         = errors.New("item name is required")
	ErrInvalidPreference = errors.New("invalid notification preference")
)

// Item is a product with its master attributes. Deleting an Item deletes
// its Batches.
type Item struct {
	ID        string
	TenantID  string
	Name      string
	Category  string
	Supplier  string
	Location  string
	Notes     string
	Barcode   string
	Batches   []Batch
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Batch belongs to exactly one Item. ExpiryDate is the stored calendar
// date (YYYY-MM-DD) and may be malformed in legacy rows; it is parsed at
// evaluation time.
type Batch struct {
	ID          string
	ItemID      string
	BatchNumber string
	ExpiryDate  string
	Quantity    int
}

// Validate checks the invariants enforced on creation.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if len(i.Batches) == 0 {
		return ErrNoBatches
	}
	for idx, b := range i.Batches {
		if b.Quantity < 0 {
			return fmt.Errorf("batch %d: %w", idx, ErrNegativeQuantity)
		}
	}
	return nil
}

// Repository is the tenant-scoped inventory store.
type Repository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*Item, error)
	GetByID(ctx context.Context, tenantID, itemID string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	// Delete removes the item and all of its batches.
	Delete(ctx context.Context, tenantID, itemID string) error
}
