package orders

import (
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminOrderFilters describe the inputs supported by the admin order list.
// Status and the date range are applied in SQL; Category is matched against
// the joined product after the page is fetched, so a filtered page can come
// back shorter than the requested limit.
type AdminOrderFilters struct {
	Status   *enums.OrderStatus
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

// CreateOrderInput captures the data needed to place an order.
type CreateOrderInput struct {
	BuyerID   uuid.UUID
	ProductID uuid.UUID
}

// UpdateStatusInput captures an admin status transition request.
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
	Note    *string
	ActorID uuid.UUID
}

// PartySummary is the display identity attached to order rows.
type PartySummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

// ProductSummary is the product slice attached to order rows.
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    *string         `json:"image,omitempty"`
}

// OrderView is the enriched order returned by the list endpoints.
type OrderView struct {
	ID        uuid.UUID         `json:"id"`
	Product   ProductSummary    `json:"product"`
	Buyer     PartySummary      `json:"buyer"`
	Vendor    PartySummary      `json:"vendor"`
	Price     decimal.Decimal   `json:"price"`
	Fee       decimal.Decimal   `json:"fee"`
	Total     decimal.Decimal   `json:"total"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// CreateOrderResult pairs the created order with the caller-facing message.
type CreateOrderResult struct {
	Order   OrderView `json:"order"`
	Message string    `json:"message"`
}

// AdminOrderList is the paginated admin listing.
type AdminOrderList struct {
	Orders []OrderView `json:"orders"`
	Count  int         `json:"count"`
	Total  int64       `json:"total"`
	Page   int         `json:"page"`
	Pages  int         `json:"pages"`
}

// ActivityLogView is one audit trail entry.
type ActivityLogView struct {
	ID        uuid.UUID         `json:"id"`
	Status    enums.OrderStatus `json:"status"`
	Note      *string           `json:"note,omitempty"`
	UpdatedBy uuid.UUID         `json:"updated_by"`
	CreatedAt time.Time         `json:"created_at"`
}
