package orders

import (
	"context"
	"fmt"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/metrics"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateOrderMessage is returned to the buyer on successful placement. The
// balance is settled manually by an admin afterwards, never at creation.
const CreateOrderMessage = "Order placed successfully. Admin will confirm after balance update."

var oneHundred = decimal.NewFromInt(100)

type userFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type productFinder interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service defines the order workflow operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]OrderView, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]OrderView, error)
	ListAll(ctx context.Context, filters AdminOrderFilters, params pagination.Params) (*AdminOrderList, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderView, error)
	Activity(ctx context.Context, orderID uuid.UUID) ([]ActivityLogView, error)
	AllForExport(ctx context.Context) ([]OrderView, error)
}

type service struct {
	repo     Repository
	users    userFinder
	products productFinder
	workflow *metrics.WorkflowMetrics
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, users userFinder, products productFinder, workflow *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{
		repo:     repo,
		users:    users,
		products: products,
		workflow: workflow,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.BuyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	buyer, err := s.users.FindUser(ctx, input.BuyerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load buyer")
	}

	product, err := s.products.FindProduct(ctx, input.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.AdoptedBy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product is not adopted by any vendor")
	}

	vendor, err := s.users.FindUser(ctx, *product.AdoptedBy)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	// fee is frozen from the buyer's ratio at placement
	fee := product.Price.Mul(buyer.FeeRatio).Div(oneHundred)
	total := product.Price.Add(fee)

	order := &models.Order{
		ProductID: product.ID,
		BuyerID:   buyer.ID,
		VendorID:  vendor.ID,
		Price:     product.Price,
		Fee:       fee,
		Total:     total,
		Status:    enums.OrderStatusPlaced,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	created.Product = product
	created.Buyer = buyer
	created.Vendor = vendor
	s.workflow.IncOrderCreated()

	view := toOrderView(*created)
	return &CreateOrderResult{Order: view, Message: CreateOrderMessage}, nil
}

func (s *service) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]OrderView, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list buyer orders")
	}
	return toOrderViews(list), nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]OrderView, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor orders")
	}
	return toOrderViews(list), nil
}

// ListAll pages in SQL on status and date, then applies the category filter
// against the joined product. Total and pages reflect the pre-category count,
// and a category-filtered page may hold fewer rows than the limit.
func (s *service) ListAll(ctx context.Context, filters AdminOrderFilters, params pagination.Params) (*AdminOrderList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter")
	}

	params = pagination.Normalize(params.Page, params.Limit)
	list, total, err := s.repo.ListFiltered(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	views := make([]OrderView, 0, len(list))
	for _, order := range list {
		if filters.Category != "" {
			if order.Product == nil || order.Product.Category != filters.Category {
				continue
			}
		}
		views = append(views, toOrderView(order))
	}

	return &AdminOrderList{
		Orders: views,
		Count:  len(views),
		Total:  total,
		Page:   params.Page,
		Pages:  pagination.PageCount(total, params.Limit),
	}, nil
}

// UpdateStatus transitions the order unconditionally and appends one audit
// entry. The two writes are separate statements; a failure between them
// leaves the transition without its log line.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*OrderView, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	if _, err := s.repo.FindOrder(ctx, input.OrderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.repo.UpdateStatus(ctx, input.OrderID, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	entry := &models.OrderActivityLog{
		OrderID:   input.OrderID,
		Status:    input.Status,
		Note:      input.Note,
		UpdatedBy: input.ActorID,
	}
	if err := s.repo.AppendActivityLog(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append activity log")
	}

	s.workflow.IncOrderTransition(input.Status.String())

	updated, err := s.repo.FindOrderWithRelations(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	view := toOrderView(*updated)
	return &view, nil
}

func (s *service) Activity(ctx context.Context, orderID uuid.UUID) ([]ActivityLogView, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	entries, err := s.repo.FindActivityLog(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load activity log")
	}

	views := make([]ActivityLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, ActivityLogView{
			ID:        entry.ID,
			Status:    entry.Status,
			Note:      entry.Note,
			UpdatedBy: entry.UpdatedBy,
			CreatedAt: entry.CreatedAt,
		})
	}
	return views, nil
}

func (s *service) AllForExport(ctx context.Context) ([]OrderView, error) {
	list, err := s.repo.ListAllWithRelations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders for export")
	}
	return toOrderViews(list), nil
}

func toOrderViews(list []models.Order) []OrderView {
	views := make([]OrderView, 0, len(list))
	for _, order := range list {
		views = append(views, toOrderView(order))
	}
	return views
}

func toOrderView(order models.Order) OrderView {
	view := OrderView{
		ID:        order.ID,
		Price:     order.Price,
		Fee:       order.Fee,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
	if order.Product != nil {
		view.Product = ProductSummary{
			ID:       order.Product.ID,
			Title:    order.Product.Title,
			Category: order.Product.Category,
			Price:    order.Product.Price,
			Image:    order.Product.Image,
		}
	}
	if order.Buyer != nil {
		view.Buyer = PartySummary{ID: order.Buyer.ID, Name: order.Buyer.Name, Phone: order.Buyer.Phone}
	}
	if order.Vendor != nil {
		view.Vendor = PartySummary{ID: order.Vendor.ID, Name: order.Vendor.Name, Phone: order.Vendor.Phone}
	}
	return view
}
