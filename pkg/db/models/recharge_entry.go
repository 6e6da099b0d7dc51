package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
)

// RechargeEntry is one row of a user's balance ledger. Entries are created
// pending (amount 0) and approved at most once; approval is enforced with a
// conditional update on status so two admins cannot both credit the same
// entry. Entries are never deleted individually, only with their owner.
type RechargeEntry struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Amount     decimal.Decimal      `gorm:"column:amount;type:numeric(14,2);not null;default:0"`
	Status     enums.RechargeStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Note       string               `gorm:"column:note"`
	Screenshot *string              `gorm:"column:screenshot"`
	User       *User                `gorm:"foreignKey:UserID"`
	ApprovedBy *uuid.UUID           `gorm:"column:approved_by;type:uuid"`
	ApprovedAt *time.Time           `gorm:"column:approved_at"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}
