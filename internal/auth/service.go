package auth

import (
	"context"
	"fmt"
	"time"

	pkgauth "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/auth"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/notify"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	otpTTL   = 15 * time.Minute
	resetTTL = 1 * time.Hour

	// RegisterMessage prompts the new account to verify before logging in.
	RegisterMessage = "Registration successful. Check your email for the verification code."
)

// Service defines the authentication operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	VerifyOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetInput) error
	Profile(ctx context.Context, userID uuid.UUID) (*UserInfo, error)
}

type service struct {
	repo   Repository
	users  userStore
	sender notify.Sender
	jwtCfg config.JWTConfig
	pwdCfg config.PasswordConfig
	now    clock
}

// NewService builds an auth service with the required dependencies.
func NewService(repo Repository, users userStore, sender notify.Sender, jwtCfg config.JWTConfig, pwdCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user store required")
	}
	if sender == nil {
		return nil, fmt.Errorf("notification sender required")
	}
	return &service{
		repo:   repo,
		users:  users,
		sender: sender,
		jwtCfg: jwtCfg,
		pwdCfg: pwdCfg,
		now:    time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if input.Name == "" || input.Phone == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, phone, email and password are required")
	}

	hash, err := security.HashPassword(input.Password, s.pwdCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         input.Name,
		Phone:        &input.Phone,
		Email:        &input.Email,
		PasswordHash: hash,
		Role:         enums.RoleCustomer,
		Status:       enums.UserStatusActive,
		IsVerified:   false,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	code, err := security.GenerateOTP()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	otp := &models.OTP{
		UserID:    created.ID,
		Code:      code,
		ExpiresAt: s.now().Add(otpTTL),
	}
	if err := s.repo.CreateOTP(ctx, otp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	// delivery failure does not roll back the account; the code can be re-sent
	_ = s.sender.Send(ctx, notify.Message{
		To:      input.Email,
		Subject: "Verify your account",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(otpTTL.Minutes())),
	})

	return &RegisterResult{User: toUserInfo(*created), Message: RegisterMessage}, nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and code are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	otp, err := s.repo.FindOTP(ctx, user.ID, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid verification code")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp")
	}
	if s.now().After(otp.ExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification code expired")
	}

	if err := s.users.Update(ctx, user.ID, map[string]any{"is_verified": true}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark user verified")
	}
	if err := s.repo.DeleteOTPs(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear otps")
	}
	return nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Phone == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone and password are required")
	}

	user, err := s.users.FindByPhone(ctx, input.Phone)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	if !user.IsVerified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is not verified")
	}
	if user.Status != enums.UserStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is inactive")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResult{Token: token, User: toUserInfo(*user)}, nil
}

// ForgotPassword always succeeds from the caller's perspective so account
// existence is not disclosed.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	raw, digest, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: digest,
		ExpiresAt: s.now().Add(resetTTL),
	}
	if err := s.repo.CreateReset(ctx, reset); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset token")
	}

	_ = s.sender.Send(ctx, notify.Message{
		To:      email,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Use this token to reset your password: %s. It expires in %d minutes.", raw, int(resetTTL.Minutes())),
	})
	return nil
}

func (s *service) ResetPassword(ctx context.Context, input ResetInput) error {
	if input.Token == "" || input.NewPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token and new password are required")
	}

	reset, err := s.repo.FindResetByHash(ctx, security.HashResetToken(input.Token))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset token")
	}
	if s.now().After(reset.ExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired reset token")
	}

	hash, err := security.HashPassword(input.NewPassword, s.pwdCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.Update(ctx, reset.UserID, map[string]any{"password_hash": hash}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	if err := s.repo.DeleteResets(ctx, reset.UserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear reset tokens")
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.users.FindUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	info := toUserInfo(*user)
	return &info, nil
}

func toUserInfo(user models.User) UserInfo {
	return UserInfo{
		ID:         user.ID,
		Name:       user.Name,
		Phone:      user.Phone,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		StoreLevel: user.StoreLevel,
		Balance:    user.Balance,
		FeeRatio:   user.FeeRatio,
	}
}
