package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing uploaded by an admin. AdoptedBy is nil
// until a vendor adopts the product; adoption is one-way and exclusive.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string          `gorm:"column:title;not null"`
	Description *string         `gorm:"column:description"`
	Category    string          `gorm:"column:category;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Image       *string         `gorm:"column:image"`
	StoreLevels pq.StringArray  `gorm:"column:store_levels;type:text[]"`
	FeeRatio    decimal.Decimal `gorm:"column:fee_ratio;type:numeric(6,2);not null;default:0"`
	UploadedBy  uuid.UUID       `gorm:"column:uploaded_by;type:uuid;not null"`
	AdoptedBy   *uuid.UUID      `gorm:"column:adopted_by;type:uuid;index"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
