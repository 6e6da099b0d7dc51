package recharges

import (
	"context"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the recharge ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateEntry(ctx context.Context, entry *models.RechargeEntry) (*models.RechargeEntry, error)
	FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RechargeEntry, error)
	// ApprovePending flips a pending entry to approved and returns the number
	// of rows touched. Zero means the entry was already approved (or gone).
	ApprovePending(ctx context.Context, entryID uuid.UUID, amount decimal.Decimal, note string, approvedBy uuid.UUID, approvedAt time.Time) (int64, error)
	IncrementBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	ListPending(ctx context.Context) ([]models.RechargeEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RechargeEntry, error)
	ListFiltered(ctx context.Context, filters Filters) ([]models.RechargeEntry, error)
	ListScreenshotsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
