package users

import (
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput captures the fields an admin supplies for a new account.
// Accounts created this way are verified immediately.
type CreateInput struct {
	Name       string
	Phone      *string
	Email      *string
	Password   string
	Role       enums.Role
	StoreLevel *enums.StoreLevel
	FeeRatio   *decimal.Decimal
}

// UpdateInput carries optional field updates; nil means leave unchanged.
type UpdateInput struct {
	Name       *string
	Phone      *string
	StoreLevel *enums.StoreLevel
	FeeRatio   *decimal.Decimal
	Balance    *decimal.Decimal
}

// AdjustBalanceInput is the admin-signed balance correction.
type AdjustBalanceInput struct {
	AdminID uuid.UUID
	UserID  uuid.UUID
	Delta   decimal.Decimal
	Note    string
}

// View is the user shape returned to callers. Password hash never leaves
// the service.
type View struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Phone      *string          `json:"phone,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Role       enums.Role       `json:"role"`
	Status     enums.UserStatus `json:"status"`
	IsVerified bool             `json:"is_verified"`
	StoreLevel enums.StoreLevel `json:"store_level"`
	Balance    decimal.Decimal  `json:"balance"`
	FeeRatio   decimal.Decimal  `json:"fee_ratio"`
	CreatedAt  time.Time        `json:"created_at"`
}

// AdjustBalanceResult returns the new balance after the signed delta.
type AdjustBalanceResult struct {
	UserID  uuid.UUID       `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// RecentOrderView is the trimmed order row shown on the admin dashboard.
type RecentOrderView struct {
	ID           uuid.UUID         `json:"id"`
	ProductTitle string            `json:"product_title"`
	BuyerName    string            `json:"buyer_name"`
	Total        decimal.Decimal   `json:"total"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AdminDashboard aggregates platform-wide counts for the admin home screen.
type AdminDashboard struct {
	TotalUsers       int64             `json:"total_users"`
	TotalCustomers   int64             `json:"total_customers"`
	TotalStores      int64             `json:"total_stores"`
	TotalProducts    int64             `json:"total_products"`
	TotalOrders      int64             `json:"total_orders"`
	DeliveredRevenue decimal.Decimal   `json:"delivered_revenue"`
	RecentOrders     []RecentOrderView `json:"recent_orders"`
}

// VendorDashboard summarizes the vendor's workload.
type VendorDashboard struct {
	AssignedOrders int64 `json:"assigned_orders"`
}

// CustomerDashboard summarizes the customer's wallet and activity.
type CustomerDashboard struct {
	Balance    decimal.Decimal `json:"balance"`
	OrderCount int64           `json:"order_count"`
}
