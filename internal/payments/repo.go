package payments

import (
	"context"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payment config repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetOrCreate returns the oldest config row, inserting an empty one on first
// use so callers can always update in place.
func (r *repository) GetOrCreate(ctx context.Context) (*models.PaymentConfig, error) {
	var cfg models.PaymentConfig
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentConfig{}).
		Where("id = ?", id).
		Updates(updates).Error
}
