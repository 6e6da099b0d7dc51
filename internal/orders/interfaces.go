package orders

import (
	"context"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their activity log.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderWithRelations(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Order, error)
	ListFiltered(ctx context.Context, filters AdminOrderFilters, params pagination.Params) ([]models.Order, int64, error)
	ListAllWithRelations(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	AppendActivityLog(ctx context.Context, entry *models.OrderActivityLog) error
	FindActivityLog(ctx context.Context, orderID uuid.UUID) ([]models.OrderActivityLog, error)
	CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error)
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	DeliveredRevenue(ctx context.Context) (decimal.Decimal, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
}
