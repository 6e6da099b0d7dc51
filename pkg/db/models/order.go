package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
)

// Order captures a purchase of an adopted product. Price, fee and total are
// frozen at creation time; fee ratio changes on the buyer afterwards do not
// recompute them. Orders are never deleted.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index"`
	BuyerID   uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null;index"`
	VendorID  uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null;index"`
	Price     decimal.Decimal   `gorm:"column:price;type:numeric(14,2);not null"`
	Fee       decimal.Decimal   `gorm:"column:fee;type:numeric(14,2);not null"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(14,2);not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:'placed'"`
	Product   *Product          `gorm:"foreignKey:ProductID"`
	Buyer     *User             `gorm:"foreignKey:BuyerID"`
	Vendor    *User             `gorm:"foreignKey:VendorID"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
