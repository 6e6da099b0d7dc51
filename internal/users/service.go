package users

import (
	"context"
	"fmt"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/internal/recharges"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const adjustmentNote = "Balance adjusted by admin"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ledgerWriter appends synthetic entries to the recharge ledger so balance
// adjustments stay auditable. WithTx keeps the ledger entry inside the same
// transaction as the balance mutation.
type ledgerWriter interface {
	WithTx(tx *gorm.DB) recharges.Repository
	CreateEntry(ctx context.Context, entry *models.RechargeEntry) (*models.RechargeEntry, error)
	ListScreenshotsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type fileDeleter interface {
	Delete(ctx context.Context, relPath string) error
}

// Service defines the user administration operations.
type Service interface {
	List(ctx context.Context, role *enums.Role) ([]View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	Create(ctx context.Context, input CreateInput) (*View, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*AdjustBalanceResult, error)
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger ledgerWriter
	files  fileDeleter
	pwdCfg config.PasswordConfig
}

// NewService builds a user service with the required dependencies.
func NewService(repo Repository, tx txRunner, ledger ledgerWriter, files fileDeleter, pwdCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger writer required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{repo: repo, tx: tx, ledger: ledger, files: files, pwdCfg: pwdCfg}, nil
}

func (s *service) List(ctx context.Context, role *enums.Role) ([]View, error) {
	if role != nil && !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role filter")
	}
	list, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	views := make([]View, 0, len(list))
	for _, user := range list {
		views = append(views, toView(user))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*user)
	return &view, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if input.Name == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and password are required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if input.StoreLevel != nil && !input.StoreLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store level")
	}

	hash, err := security.HashPassword(input.Password, s.pwdCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       enums.UserStatusActive,
		IsVerified:   true,
	}
	if input.StoreLevel != nil {
		user.StoreLevel = *input.StoreLevel
	}
	if input.FeeRatio != nil {
		user.FeeRatio = *input.FeeRatio
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	view := toView(*created)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	if _, err := s.findUser(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.StoreLevel != nil {
		if !input.StoreLevel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store level")
		}
		updates["store_level"] = *input.StoreLevel
	}
	if input.FeeRatio != nil {
		updates["fee_ratio"] = *input.FeeRatio
	}
	if input.Balance != nil {
		updates["balance"] = *input.Balance
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	updated, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*updated)
	return &view, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) (*View, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user status")
	}
	if _, err := s.findUser(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user status")
	}
	updated, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*updated)
	return &view, nil
}

// Delete removes the user row and, best effort, the recharge screenshot
// files the row cascade takes with it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	screenshots, err := s.ledger.ListScreenshotsByUser(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user screenshots")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}

	for _, path := range screenshots {
		_ = s.files.Delete(ctx, path)
	}
	return nil
}

// AdjustBalance applies a signed delta and appends a synthetic approved
// ledger entry attributed to the admin. Negative deltas may drive the
// balance below zero; there is no overdraft guard.
func (s *service) AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*AdjustBalanceResult, error) {
	if input.AdminID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.Delta.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}

	if _, err := s.findUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	note := input.Note
	if note == "" {
		note = adjustmentNote
	}

	var result AdjustBalanceResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		if err := repo.IncrementBalance(ctx, input.UserID, input.Delta); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust balance")
		}

		now := time.Now().UTC()
		entry := &models.RechargeEntry{
			UserID:     input.UserID,
			Amount:     input.Delta,
			Status:     enums.RechargeStatusApproved,
			Note:       note,
			ApprovedBy: &input.AdminID,
			ApprovedAt: &now,
		}
		if _, err := ledger.CreateEntry(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record adjustment")
		}

		balance, err := repo.GetBalance(ctx, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read balance")
		}
		result = AdjustBalanceResult{UserID: input.UserID, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindUser exposes the raw row for collaborating services.
func (s *service) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindUser(ctx, id)
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func toView(user models.User) View {
	return View{
		ID:         user.ID,
		Name:       user.Name,
		Phone:      user.Phone,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		StoreLevel: user.StoreLevel,
		Balance:    user.Balance,
		FeeRatio:   user.FeeRatio,
		CreatedAt:  user.CreatedAt,
	}
}
