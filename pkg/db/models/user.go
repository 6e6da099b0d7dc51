package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
)

// User represents the canonical identity entity. Balance is only mutated by
// the recharge approval path and the admin adjust-balance operation; order
// creation never touches it.
type User struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Phone        *string           `gorm:"column:phone;uniqueIndex"`
	Email        *string           `gorm:"column:email;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.Role        `gorm:"column:role;type:text;not null;default:'customer'"`
	Status       enums.UserStatus  `gorm:"column:status;type:text;not null;default:'active'"`
	IsVerified   bool              `gorm:"column:is_verified;not null;default:false"`
	StoreLevel   enums.StoreLevel  `gorm:"column:store_level;type:text;not null;default:'800U'"`
	Balance      decimal.Decimal   `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	FeeRatio     decimal.Decimal   `gorm:"column:fee_ratio;type:numeric(6,2);not null;default:0"`
	Recharges    []RechargeEntry   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
