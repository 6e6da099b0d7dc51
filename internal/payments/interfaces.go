package payments

import (
	"context"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository owns the singleton payment instruction row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreate(ctx context.Context) (*models.PaymentConfig, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
