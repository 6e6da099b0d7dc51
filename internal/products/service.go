package products

import (
	"context"
	"fmt"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type fileDeleter interface {
	Delete(ctx context.Context, relPath string) error
}

// Service defines the catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]View, error)
	ListAdopted(ctx context.Context) ([]View, error)
	ListSelectable(ctx context.Context, category string) ([]View, error)
	ListMine(ctx context.Context, vendorID uuid.UUID) ([]View, error)
	Adopt(ctx context.Context, vendorID, productID uuid.UUID) (*View, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     Repository
	files    fileDeleter
	workflow *metrics.WorkflowMetrics
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, files fileDeleter, workflow *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{repo: repo, files: files, workflow: workflow}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.UploadedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	product := &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Image:       input.ImagePath,
		StoreLevels: pq.StringArray(input.StoreLevels),
		FeeRatio:    input.FeeRatio,
		UploadedBy:  input.UploadedBy,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	view := toView(*created)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*product)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.FeeRatio != nil {
		updates["fee_ratio"] = *input.FeeRatio
	}
	if input.StoreLevels != nil {
		updates["store_levels"] = pq.StringArray(input.StoreLevels)
	}

	var replacedImage *string
	if input.ImagePath != nil {
		updates["image"] = *input.ImagePath
		replacedImage = product.Image
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	if replacedImage != nil {
		// best effort, the row already points at the new file
		_ = s.files.Delete(ctx, *replacedImage)
	}

	updated, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*updated)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	if product.Image != nil {
		_ = s.files.Delete(ctx, *product.Image)
	}
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]View, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toViews(list), nil
}

func (s *service) ListAdopted(ctx context.Context) ([]View, error) {
	list, err := s.repo.ListAdopted(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list adopted products")
	}
	return toViews(list), nil
}

func (s *service) ListSelectable(ctx context.Context, category string) ([]View, error) {
	list, err := s.repo.ListSelectable(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list selectable products")
	}
	return toViews(list), nil
}

func (s *service) ListMine(ctx context.Context, vendorID uuid.UUID) ([]View, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor products")
	}
	return toViews(list), nil
}

// Adopt claims a product for the vendor. Adoption is one-way and exclusive;
// a product that already has a vendor conflicts, including when two vendors
// race and this caller loses.
func (s *service) Adopt(ctx context.Context, vendorID, productID uuid.UUID) (*View, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.AdoptedBy != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already adopted")
	}

	rows, err := s.repo.AdoptIfUnadopted(ctx, productID, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adopt product")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already adopted")
	}

	s.workflow.IncProductAdopted()

	adopted, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	view := toView(*adopted)
	return &view, nil
}

// FindProduct exposes the raw row for collaborating services.
func (s *service) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindProduct(ctx, id)
}

func (s *service) findProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func toViews(list []models.Product) []View {
	views := make([]View, 0, len(list))
	for _, product := range list {
		views = append(views, toView(product))
	}
	return views
}

func toView(product models.Product) View {
	return View{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		Image:       product.Image,
		StoreLevels: product.StoreLevels,
		FeeRatio:    product.FeeRatio,
		UploadedBy:  product.UploadedBy,
		AdoptedBy:   product.AdoptedBy,
		CreatedAt:   product.CreatedAt,
	}
}
