package auth

import (
	"context"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence for OTP codes and password reset tokens.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOTP(ctx context.Context, otp *models.OTP) error
	FindOTP(ctx context.Context, userID uuid.UUID, code string) (*models.OTP, error)
	DeleteOTPs(ctx context.Context, userID uuid.UUID) error
	CreateReset(ctx context.Context, reset *models.PasswordReset) error
	FindResetByHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error)
	DeleteResets(ctx context.Context, userID uuid.UUID) error
}

// userStore is the slice of the users repository the auth flow needs.
type userStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// clock lets tests pin time for OTP and reset expiry.
type clock func() time.Time
