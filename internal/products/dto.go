package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CreateInput captures the fields an admin supplies for a new listing.
type CreateInput struct {
	Title       string
	Description *string
	Category    string
	Price       decimal.Decimal
	FeeRatio    decimal.Decimal
	StoreLevels []string
	ImagePath   *string
	UploadedBy  uuid.UUID
}

// UpdateInput carries optional field updates; nil means leave unchanged.
// ImagePath replaces the stored image and removes the old file.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	FeeRatio    *decimal.Decimal
	StoreLevels []string
	ImagePath   *string
}

// View is the product shape returned to callers.
type View struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image,omitempty"`
	StoreLevels pq.StringArray  `json:"store_levels"`
	FeeRatio    decimal.Decimal `json:"fee_ratio"`
	UploadedBy  uuid.UUID       `json:"uploaded_by"`
	AdoptedBy   *uuid.UUID      `json:"adopted_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
