package products

import (
	"context"
	"testing"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubProductsRepo struct {
	products map[uuid.UUID]*models.Product
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{products: map[uuid.UUID]*models.Product{}}
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductsRepo) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	product, ok := s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if title, ok := updates["title"].(string); ok {
		product.Title = title
	}
	if image, ok := updates["image"].(string); ok {
		product.Image = &image
	}
	return nil
}

func (s *stubProductsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductsRepo) ListAll(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	for _, product := range s.products {
		list = append(list, *product)
	}
	return list, nil
}

func (s *stubProductsRepo) ListAdopted(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	for _, product := range s.products {
		if product.AdoptedBy != nil {
			list = append(list, *product)
		}
	}
	return list, nil
}

func (s *stubProductsRepo) ListSelectable(ctx context.Context, category string) ([]models.Product, error) {
	var list []models.Product
	for _, product := range s.products {
		if product.AdoptedBy != nil {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		list = append(list, *product)
	}
	return list, nil
}

func (s *stubProductsRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var list []models.Product
	for _, product := range s.products {
		if product.AdoptedBy != nil && *product.AdoptedBy == vendorID {
			list = append(list, *product)
		}
	}
	return list, nil
}

func (s *stubProductsRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *stubProductsRepo) AdoptIfUnadopted(ctx context.Context, productID, vendorID uuid.UUID) (int64, error) {
	product, ok := s.products[productID]
	if !ok || product.AdoptedBy != nil {
		return 0, nil
	}
	product.AdoptedBy = &vendorID
	return 1, nil
}

type stubFileDeleter struct {
	deleted []string
}

func (s *stubFileDeleter) Delete(ctx context.Context, relPath string) error {
	s.deleted = append(s.deleted, relPath)
	return nil
}

func newProductFixtures(t *testing.T) (*stubProductsRepo, *stubFileDeleter, Service) {
	t.Helper()
	repo := newStubProductsRepo()
	files := &stubFileDeleter{}
	svc, err := NewService(repo, files, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return repo, files, svc
}

func TestAdoptClaimsUnadoptedProduct(t *testing.T) {
	repo, _, svc := newProductFixtures(t)

	product := &models.Product{Title: "Widget", Price: decimal.NewFromInt(10)}
	repo.Create(context.Background(), product)
	vendorID := uuid.New()

	view, err := svc.Adopt(context.Background(), vendorID, product.ID)
	if err != nil {
		t.Fatalf("adopt: %v", err)
	}
	if view.AdoptedBy == nil || *view.AdoptedBy != vendorID {
		t.Errorf("adopted_by = %v, want %s", view.AdoptedBy, vendorID)
	}
}

func TestAdoptTwiceConflicts(t *testing.T) {
	repo, _, svc := newProductFixtures(t)

	product := &models.Product{Title: "Widget"}
	repo.Create(context.Background(), product)

	if _, err := svc.Adopt(context.Background(), uuid.New(), product.ID); err != nil {
		t.Fatalf("first adopt: %v", err)
	}

	_, err := svc.Adopt(context.Background(), uuid.New(), product.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAdoptMissingProduct(t *testing.T) {
	_, _, svc := newProductFixtures(t)

	_, err := svc.Adopt(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRemovesImageFile(t *testing.T) {
	repo, files, svc := newProductFixtures(t)

	image := "products/123-widget.png"
	product := &models.Product{Title: "Widget", Image: &image}
	repo.Create(context.Background(), product)

	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(files.deleted) != 1 || files.deleted[0] != image {
		t.Errorf("deleted files = %v, want [%s]", files.deleted, image)
	}
}

func TestUpdateReplacingImageDeletesOldFile(t *testing.T) {
	repo, files, svc := newProductFixtures(t)

	oldImage := "products/old.png"
	product := &models.Product{Title: "Widget", Image: &oldImage}
	repo.Create(context.Background(), product)

	newImage := "products/new.png"
	view, err := svc.Update(context.Background(), product.ID, UpdateInput{ImagePath: &newImage})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Image == nil || *view.Image != newImage {
		t.Errorf("image = %v, want %s", view.Image, newImage)
	}
	if len(files.deleted) != 1 || files.deleted[0] != oldImage {
		t.Errorf("deleted files = %v, want [%s]", files.deleted, oldImage)
	}
}

func TestListSelectableFiltersAdoptedAndCategory(t *testing.T) {
	repo, _, svc := newProductFixtures(t)

	vendorID := uuid.New()
	repo.Create(context.Background(), &models.Product{Title: "A", Category: "gadgets"})
	repo.Create(context.Background(), &models.Product{Title: "B", Category: "tools"})
	repo.Create(context.Background(), &models.Product{Title: "C", Category: "gadgets", AdoptedBy: &vendorID})

	list, err := svc.ListSelectable(context.Background(), "gadgets")
	if err != nil {
		t.Fatalf("list selectable: %v", err)
	}
	if len(list) != 1 || list[0].Title != "A" {
		t.Errorf("unexpected list %+v", list)
	}
}
