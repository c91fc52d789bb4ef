package dto

import (
	"time"

	"shelfwatch/internal/domain/expiry"
	"shelfwatch/internal/domain/inventory"
)

// CreateBatchRequest is one batch of a new product.
type CreateBatchRequest struct {
	BatchNumber string `json:"batch_number" binding:"omitempty,max=64"`
	ExpiryDate  string `json:"expiry_date" binding:"required,datetime=2006-01-02"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
}

// CreateProductRequest creates an item together with its batches.
type CreateProductRequest struct {
	Name     string               `json:"name" binding:"required,max=200"`
	Category string               `json:"category" binding:"omitempty,max=100"`
	Supplier string               `json:"supplier" binding:"omitempty,max=200"`
	Location string               `json:"location" binding:"omitempty,max=200"`
	Notes    string               `json:"notes" binding:"omitempty,max=2000"`
	Barcode  string               `json:"barcode" binding:"omitempty,max=64"`
	Batches  []CreateBatchRequest `json:"batches" binding:"required,min=1,dive"`
}

// BatchResponse carries the live status. Status is "invalid" and
// DaysUntil is nil when the stored date cannot be parsed.
type BatchResponse struct {
	ID          string `json:"id"`
	BatchNumber string `json:"batch_number,omitempty"`
	ExpiryDate  string `json:"expiry_date"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	DaysUntil   *int   `json:"days_until"`
}

// ProductResponse is an item with its batches. Status is that of the most
// urgent valid batch.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier,omitempty"`
	Location  string          `json:"location,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Barcode   string          `json:"barcode,omitempty"`
	Status    string          `json:"status,omitempty"`
	Batches   []BatchResponse `json:"batches"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const StatusInvalid = "invalid"

// ToProductResponse evaluates every batch with engine.
func ToProductResponse(item *inventory.Item, engine *expiry.Engine) *ProductResponse {
	resp := &ProductResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Supplier:  item.Supplier,
		Location:  item.Location,
		Notes:     item.Notes,
		Barcode:   item.Barcode,
		Batches:   make([]BatchResponse, 0, len(item.Batches)),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	today := engine.Today()
	minDays := 0
	found := false
	for _, b := range item.Batches {
		br := BatchResponse{
			ID:          b.ID,
			BatchNumber: b.BatchNumber,
			ExpiryDate:  b.ExpiryDate,
			Quantity:    b.Quantity,
			Status:      StatusInvalid,
		}
		if eval, _, err := engine.EvaluateStringOn(today, b.ExpiryDate); err == nil {
			days := eval.DaysUntil
			br.Status = string(eval.Status)
			br.DaysUntil = &days
			if !found || days < minDays {
				minDays = days
				found = true
			}
		}
		resp.Batches = append(resp.Batches, br)
	}
	if found {
		resp.Status = string(expiry.Classify(minDays))
	}
	return resp
}
