package models

import (
	"time"

	"shelfwatch/internal/shared/constants"
)

type ProductModel struct {
	ID        string              `gorm:"primarykey;size:32"`
	TenantID  string              `gorm:"not null;size:64;index:idx_products_tenant"`
	Name      string              `gorm:"not null;size:200"`
	Category  string              `gorm:"size:100"`
	Supplier  string              `gorm:"size:200"`
	Location  string              `gorm:"size:200"`
	Notes     string              `gorm:"type:text"`
	Barcode   string              `gorm:"size:64"`
	Batches   []ProductBatchModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string {
	return constants.TableProducts
}

// ProductBatchModel keeps expiry_date as the stored string; parsing happens
// on read so one malformed row cannot break a listing.
type ProductBatchModel struct {
	ID          string `gorm:"primarykey;size:32"`
	ProductID   string `gorm:"not null;size:32;index:idx_product_batches_product"`
	BatchNumber string `gorm:"size:64"`
	ExpiryDate  string `gorm:"not null;size:32"`
	Quantity    int    `gorm:"not null"`
	CreatedAt   time.Time
}

func (ProductBatchModel) TableName() string {
	return constants.TableProductBatches
}
