package recharges

import (
	"context"
	"fmt"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	pendingNote     = "Pending approval"
	defaultApproval = "Approved by admin"

	// ApproveMessage confirms the credit to the approving admin.
	ApproveMessage = "Recharge approved and balance updated."
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service defines the recharge ledger operations.
type Service interface {
	SubmitProof(ctx context.Context, userID uuid.UUID, screenshotPath string) (*EntryView, error)
	Approve(ctx context.Context, input ApproveInput) (*ApproveResult, error)
	ListPending(ctx context.Context) ([]OwnedEntryView, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]EntryView, error)
	ListAll(ctx context.Context, filters Filters) ([]OwnedEntryView, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	users    userFinder
	workflow *metrics.WorkflowMetrics
}

// NewService builds a recharge service with the required dependencies.
func NewService(repo Repository, tx txRunner, users userFinder, workflow *metrics.WorkflowMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recharges repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		users:    users,
		workflow: workflow,
	}, nil
}

func (s *service) SubmitProof(ctx context.Context, userID uuid.UUID, screenshotPath string) (*EntryView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if screenshotPath == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "screenshot is required")
	}

	if _, err := s.users.FindUser(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	entry := &models.RechargeEntry{
		UserID:     userID,
		Amount:     decimal.Zero,
		Status:     enums.RechargeStatusPending,
		Note:       pendingNote,
		Screenshot: &screenshotPath,
	}
	created, err := s.repo.CreateEntry(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recharge entry")
	}

	s.workflow.IncRechargeSubmitted()
	view := toEntryView(*created)
	return &view, nil
}

// Approve credits the owner's balance exactly once per entry. The status flip
// is a conditional update inside the same transaction as the balance
// increment, so a concurrent second approval sees zero rows and conflicts.
func (s *service) Approve(ctx context.Context, input ApproveInput) (*ApproveResult, error) {
	if input.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.UserID == uuid.Nil || input.EntryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and entry id required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	if _, err := s.users.FindUser(ctx, input.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	note := input.Note
	if note == "" {
		note = defaultApproval
	}

	var result ApproveResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entry, err := repo.FindEntry(ctx, input.EntryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeValidation, "recharge entry not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recharge entry")
		}
		if entry.UserID != input.UserID {
			return pkgerrors.New(pkgerrors.CodeValidation, "recharge entry does not belong to user")
		}
		if entry.Status == enums.RechargeStatusApproved {
			return pkgerrors.New(pkgerrors.CodeConflict, "recharge entry already approved")
		}

		now := time.Now().UTC()
		rows, err := repo.ApprovePending(ctx, input.EntryID, input.Amount, note, input.AdminID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve recharge entry")
		}
		if rows == 0 {
			// lost the race to another admin
			return pkgerrors.New(pkgerrors.CodeConflict, "recharge entry already approved")
		}

		if err := repo.IncrementBalance(ctx, input.UserID, input.Amount); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit balance")
		}

		balance, err := repo.GetBalance(ctx, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read balance")
		}

		entry.Amount = input.Amount
		entry.Status = enums.RechargeStatusApproved
		entry.Note = note
		entry.ApprovedBy = &input.AdminID
		entry.ApprovedAt = &now

		result = ApproveResult{
			Entry:   toEntryView(*entry),
			Balance: balance,
			Message: ApproveMessage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.workflow.IncRechargeApproved()
	return &result, nil
}

func (s *service) ListPending(ctx context.Context) ([]OwnedEntryView, error) {
	entries, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending recharges")
	}
	return toOwnedViews(entries), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]EntryView, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recharges")
	}
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toEntryView(entry))
	}
	return views, nil
}

func (s *service) ListAll(ctx context.Context, filters Filters) ([]OwnedEntryView, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid recharge status filter")
	}
	entries, err := s.repo.ListFiltered(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recharges")
	}
	return toOwnedViews(entries), nil
}

func toOwnedViews(entries []models.RechargeEntry) []OwnedEntryView {
	views := make([]OwnedEntryView, 0, len(entries))
	for _, entry := range entries {
		view := OwnedEntryView{EntryView: toEntryView(entry)}
		if entry.User != nil {
			view.UserName = entry.User.Name
			view.UserPhone = entry.User.Phone
		}
		views = append(views, view)
	}
	return views
}

func toEntryView(entry models.RechargeEntry) EntryView {
	return EntryView{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Amount:     entry.Amount,
		Status:     entry.Status,
		Note:       entry.Note,
		Screenshot: entry.Screenshot,
		ApprovedBy: entry.ApprovedBy,
		ApprovedAt: entry.ApprovedAt,
		CreatedAt:  entry.CreatedAt,
	}
}
