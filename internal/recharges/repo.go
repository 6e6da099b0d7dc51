package recharges

import (
	"context"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a recharge repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.RechargeEntry) (*models.RechargeEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RechargeEntry, error) {
	var entry models.RechargeEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", entryID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ApprovePending(ctx context.Context, entryID uuid.UUID, amount decimal.Decimal, note string, approvedBy uuid.UUID, approvedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RechargeEntry{}).
		Where("id = ? AND status = ?", entryID, enums.RechargeStatusPending).
		Updates(map[string]any{
			"amount":      amount,
			"status":      enums.RechargeStatusApproved,
			"note":        note,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) IncrementBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("balance").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

func (r *repository) ListPending(ctx context.Context) ([]models.RechargeEntry, error) {
	var entries []models.RechargeEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", enums.RechargeStatusPending).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RechargeEntry, error) {
	var entries []models.RechargeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListFiltered(ctx context.Context, filters Filters) ([]models.RechargeEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.RechargeEntry{}).Preload("User")
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var entries []models.RechargeEntry
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListScreenshotsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&models.RechargeEntry{}).
		Where("user_id = ? AND screenshot IS NOT NULL", userID).
		Pluck("screenshot", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}
