package users

import (
	"context"
	"fmt"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const recentOrderLimit = 5

type orderStats interface {
	CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error)
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	DeliveredRevenue(ctx context.Context) (decimal.Decimal, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
}

type productStats interface {
	CountAll(ctx context.Context) (int64, error)
}

// DashboardService aggregates the per-role home screen summaries.
type DashboardService interface {
	Admin(ctx context.Context) (*AdminDashboard, error)
	Vendor(ctx context.Context, vendorID uuid.UUID) (*VendorDashboard, error)
	Customer(ctx context.Context, userID uuid.UUID) (*CustomerDashboard, error)
}

type dashboardService struct {
	users    Repository
	orders   orderStats
	products productStats
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(users Repository, orders orderStats, products productStats) (DashboardService, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order stats required")
	}
	if products == nil {
		return nil, fmt.Errorf("product stats required")
	}
	return &dashboardService{users: users, orders: orders, products: products}, nil
}

func (s *dashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	totalUsers, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	customers, err := s.users.CountByRole(ctx, enums.RoleCustomer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
	}
	stores, err := s.users.CountByRole(ctx, enums.RoleStore)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}
	products, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	orders, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	revenue, err := s.orders.DeliveredRevenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum delivered revenue")
	}
	recent, err := s.orders.ListRecent(ctx, recentOrderLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent orders")
	}

	recentViews := make([]RecentOrderView, 0, len(recent))
	for _, order := range recent {
		view := RecentOrderView{
			ID:        order.ID,
			Total:     order.Total,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
		}
		if order.Product != nil {
			view.ProductTitle = order.Product.Title
		}
		if order.Buyer != nil {
			view.BuyerName = order.Buyer.Name
		}
		recentViews = append(recentViews, view)
	}

	return &AdminDashboard{
		TotalUsers:       totalUsers,
		TotalCustomers:   customers,
		TotalStores:      stores,
		TotalProducts:    products,
		TotalOrders:      orders,
		DeliveredRevenue: revenue,
		RecentOrders:     recentViews,
	}, nil
}

func (s *dashboardService) Vendor(ctx context.Context, vendorID uuid.UUID) (*VendorDashboard, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	assigned, err := s.orders.CountByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count vendor orders")
	}
	return &VendorDashboard{AssignedOrders: assigned}, nil
}

func (s *dashboardService) Customer(ctx context.Context, userID uuid.UUID) (*CustomerDashboard, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	balance, err := s.users.GetBalance(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read balance")
	}
	count, err := s.orders.CountByBuyer(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customer orders")
	}
	return &CustomerDashboard{Balance: balance, OrderCount: count}, nil
}
