package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentConfig is the singleton row of manual payment instructions shown to
// customers in place of a real payment gateway.
type PaymentConfig struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WechatQR     *string   `gorm:"column:wechat_qr"`
	WechatID     *string   `gorm:"column:wechat_id"`
	USDTQr       *string   `gorm:"column:usdt_qr"`
	USDTAddress  *string   `gorm:"column:usdt_address"`
	Description1 *string   `gorm:"column:description1"`
	Description2 *string   `gorm:"column:description2"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
