package products

import (
	"context"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]models.Product, error)
	ListAdopted(ctx context.Context) ([]models.Product, error)
	ListSelectable(ctx context.Context, category string) ([]models.Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	CountAll(ctx context.Context) (int64, error)
	// AdoptIfUnadopted claims the product for the vendor only while adopted_by
	// is still null. Zero rows means somebody else got there first.
	AdoptIfUnadopted(ctx context.Context, productID, vendorID uuid.UUID) (int64, error)
}
