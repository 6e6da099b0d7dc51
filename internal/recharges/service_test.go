package recharges

import (
	"context"
	"testing"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRechargesRepo struct {
	entries  map[uuid.UUID]*models.RechargeEntry
	balances map[uuid.UUID]decimal.Decimal
}

func newStubRechargesRepo() *stubRechargesRepo {
	return &stubRechargesRepo{
		entries:  map[uuid.UUID]*models.RechargeEntry{},
		balances: map[uuid.UUID]decimal.Decimal{},
	}
}

func (s *stubRechargesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubRechargesRepo) CreateEntry(ctx context.Context, entry *models.RechargeEntry) (*models.RechargeEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *stubRechargesRepo) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.RechargeEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *stubRechargesRepo) ApprovePending(ctx context.Context, entryID uuid.UUID, amount decimal.Decimal, note string, approvedBy uuid.UUID, approvedAt time.Time) (int64, error) {
	entry, ok := s.entries[entryID]
	if !ok || entry.Status != enums.RechargeStatusPending {
		return 0, nil
	}
	entry.Amount = amount
	entry.Status = enums.RechargeStatusApproved
	entry.Note = note
	entry.ApprovedBy = &approvedBy
	entry.ApprovedAt = &approvedAt
	return 1, nil
}

func (s *stubRechargesRepo) IncrementBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	s.balances[userID] = s.balances[userID].Add(delta)
	return nil
}

func (s *stubRechargesRepo) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.balances[userID], nil
}

func (s *stubRechargesRepo) ListPending(ctx context.Context) ([]models.RechargeEntry, error) {
	var list []models.RechargeEntry
	for _, entry := range s.entries {
		if entry.Status == enums.RechargeStatusPending {
			list = append(list, *entry)
		}
	}
	return list, nil
}

func (s *stubRechargesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RechargeEntry, error) {
	var list []models.RechargeEntry
	for _, entry := range s.entries {
		if entry.UserID == userID {
			list = append(list, *entry)
		}
	}
	return list, nil
}

func (s *stubRechargesRepo) ListFiltered(ctx context.Context, filters Filters) ([]models.RechargeEntry, error) {
	var list []models.RechargeEntry
	for _, entry := range s.entries {
		if filters.Status != nil && entry.Status != *filters.Status {
			continue
		}
		if filters.UserID != nil && entry.UserID != *filters.UserID {
			continue
		}
		list = append(list, *entry)
	}
	return list, nil
}

func (s *stubRechargesRepo) ListScreenshotsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var paths []string
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.Screenshot != nil {
			paths = append(paths, *entry.Screenshot)
		}
	}
	return paths, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserFinder struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserFinder) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newRechargeFixtures(t *testing.T) (*stubRechargesRepo, Service, uuid.UUID, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	adminID := uuid.New()
	repo := newStubRechargesRepo()
	users := &stubUserFinder{users: map[uuid.UUID]*models.User{
		userID:  {ID: userID, Name: "Customer", Role: enums.RoleCustomer},
		adminID: {ID: adminID, Name: "Admin", Role: enums.RoleAdmin},
	}}

	svc, err := NewService(repo, stubTxRunner{}, users, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return repo, svc, userID, adminID
}

func TestSubmitProofCreatesPendingEntry(t *testing.T) {
	repo, svc, userID, _ := newRechargeFixtures(t)

	view, err := svc.SubmitProof(context.Background(), userID, "screenshots/proof.png")
	if err != nil {
		t.Fatalf("submit proof: %v", err)
	}

	if view.Status != enums.RechargeStatusPending {
		t.Errorf("status = %s, want pending", view.Status)
	}
	if !view.Amount.IsZero() {
		t.Errorf("amount = %s, want 0", view.Amount)
	}
	if view.Note != "Pending approval" {
		t.Errorf("note = %q", view.Note)
	}
	if len(repo.entries) != 1 {
		t.Errorf("entries = %d, want 1", len(repo.entries))
	}
}

func TestSubmitProofRequiresScreenshot(t *testing.T) {
	_, svc, userID, _ := newRechargeFixtures(t)

	_, err := svc.SubmitProof(context.Background(), userID, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApproveCreditsBalanceOnce(t *testing.T) {
	repo, svc, userID, adminID := newRechargeFixtures(t)

	entry := &models.RechargeEntry{UserID: userID, Status: enums.RechargeStatusPending}
	repo.CreateEntry(context.Background(), entry)
	repo.balances[userID] = decimal.NewFromInt(10)

	result, err := svc.Approve(context.Background(), ApproveInput{
		AdminID: adminID,
		UserID:  userID,
		EntryID: entry.ID,
		Amount:  decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if !result.Balance.Equal(decimal.NewFromInt(210)) {
		t.Errorf("balance = %s, want 210", result.Balance)
	}
	if result.Entry.Status != enums.RechargeStatusApproved {
		t.Errorf("status = %s, want approved", result.Entry.Status)
	}
	if result.Entry.Note != "Approved by admin" {
		t.Errorf("note = %q, want default", result.Entry.Note)
	}
	if result.Entry.ApprovedBy == nil || *result.Entry.ApprovedBy != adminID {
		t.Errorf("approved_by = %v, want %s", result.Entry.ApprovedBy, adminID)
	}
}

func TestApproveSecondTimeConflicts(t *testing.T) {
	repo, svc, userID, adminID := newRechargeFixtures(t)

	entry := &models.RechargeEntry{UserID: userID, Status: enums.RechargeStatusPending}
	repo.CreateEntry(context.Background(), entry)

	input := ApproveInput{AdminID: adminID, UserID: userID, EntryID: entry.ID, Amount: decimal.NewFromInt(100)}
	if _, err := svc.Approve(context.Background(), input); err != nil {
		t.Fatalf("first approve: %v", err)
	}

	_, err := svc.Approve(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// the balance was credited exactly once
	if !repo.balances[userID].Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance = %s, want 100", repo.balances[userID])
	}
}

func TestApproveMissingEntryIsValidationError(t *testing.T) {
	_, svc, userID, adminID := newRechargeFixtures(t)

	_, err := svc.Approve(context.Background(), ApproveInput{
		AdminID: adminID,
		UserID:  userID,
		EntryID: uuid.New(),
		Amount:  decimal.NewFromInt(100),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApproveMissingUserIsNotFound(t *testing.T) {
	_, svc, _, adminID := newRechargeFixtures(t)

	_, err := svc.Approve(context.Background(), ApproveInput{
		AdminID: adminID,
		UserID:  uuid.New(),
		EntryID: uuid.New(),
		Amount:  decimal.NewFromInt(100),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApproveEntryOwnedByOtherUser(t *testing.T) {
	repo, svc, userID, adminID := newRechargeFixtures(t)

	entry := &models.RechargeEntry{UserID: uuid.New(), Status: enums.RechargeStatusPending}
	repo.CreateEntry(context.Background(), entry)

	_, err := svc.Approve(context.Background(), ApproveInput{
		AdminID: adminID,
		UserID:  userID,
		EntryID: entry.ID,
		Amount:  decimal.NewFromInt(100),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPendingFlattensOwner(t *testing.T) {
	repo, svc, userID, _ := newRechargeFixtures(t)

	phone := "123456"
	entry := &models.RechargeEntry{
		UserID: userID,
		Status: enums.RechargeStatusPending,
		User:   &models.User{ID: userID, Name: "Customer", Phone: &phone},
	}
	repo.CreateEntry(context.Background(), entry)

	list, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("entries = %d, want 1", len(list))
	}
	if list[0].UserName != "Customer" || list[0].UserPhone == nil || *list[0].UserPhone != phone {
		t.Errorf("owner identity not flattened: %+v", list[0])
	}
}
