package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
)

// OrderActivityLog is the append-only audit trail of order status changes.
// One entry per transition, never mutated or deleted. The log records history
// but does not gate which transitions are allowed.
type OrderActivityLog struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Note      *string           `gorm:"column:note"`
	UpdatedBy uuid.UUID         `gorm:"column:updated_by;type:uuid;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
