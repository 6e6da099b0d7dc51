package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	pkgauth "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/auth"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/notify"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubAuthRepo struct {
	otps   []models.OTP
	resets []models.PasswordReset
}

func (s *stubAuthRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAuthRepo) CreateOTP(ctx context.Context, otp *models.OTP) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	s.otps = append(s.otps, *otp)
	return nil
}

func (s *stubAuthRepo) FindOTP(ctx context.Context, userID uuid.UUID, code string) (*models.OTP, error) {
	for i := len(s.otps) - 1; i >= 0; i-- {
		if s.otps[i].UserID == userID && s.otps[i].Code == code {
			otp := s.otps[i]
			return &otp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) DeleteOTPs(ctx context.Context, userID uuid.UUID) error {
	var kept []models.OTP
	for _, otp := range s.otps {
		if otp.UserID != userID {
			kept = append(kept, otp)
		}
	}
	s.otps = kept
	return nil
}

func (s *stubAuthRepo) CreateReset(ctx context.Context, reset *models.PasswordReset) error {
	if reset.ID == uuid.Nil {
		reset.ID = uuid.New()
	}
	s.resets = append(s.resets, *reset)
	return nil
}

func (s *stubAuthRepo) FindResetByHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error) {
	for i := len(s.resets) - 1; i >= 0; i-- {
		if s.resets[i].TokenHash == tokenHash {
			reset := s.resets[i]
			return &reset, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) DeleteResets(ctx context.Context, userID uuid.UUID) error {
	var kept []models.PasswordReset
	for _, reset := range s.resets {
		if reset.UserID != userID {
			kept = append(kept, reset)
		}
	}
	s.resets = kept
	return nil
}

type stubUserStore struct {
	users map[uuid.UUID]*models.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[uuid.UUID]*models.User{}}
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUserStore) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, user := range s.users {
		if user.Phone != nil && *user.Phone == phone {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if verified, ok := updates["is_verified"].(bool); ok {
		user.IsVerified = verified
	}
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	return nil
}

type recordingSender struct {
	messages []notify.Message
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	return config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "smartbridge-test",
			ExpirationMinutes: 30,
		}, config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		}
}

func newAuthFixtures(t *testing.T) (*stubAuthRepo, *stubUserStore, *recordingSender, *service) {
	t.Helper()
	repo := &stubAuthRepo{}
	users := newStubUserStore()
	sender := &recordingSender{}
	jwtCfg, pwdCfg := testConfigs()

	svc, err := NewService(repo, users, sender, jwtCfg, pwdCfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return repo, users, sender, svc.(*service)
}

func addVerifiedUser(t *testing.T, users *stubUserStore, phone, email, password string) *models.User {
	t.Helper()
	_, pwdCfg := testConfigs()
	hash, err := security.HashPassword(password, pwdCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         "User",
		Phone:        &phone,
		Email:        &email,
		PasswordHash: hash,
		Role:         enums.RoleCustomer,
		Status:       enums.UserStatusActive,
		IsVerified:   true,
	}
	users.users[user.ID] = user
	return user
}

func TestRegisterCreatesUnverifiedCustomerAndSendsOTP(t *testing.T) {
	repo, users, sender, svc := newAuthFixtures(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "New User",
		Phone:    "555-0100",
		Email:    "new@example.com",
		Password: "s3cret!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if result.User.IsVerified {
		t.Error("self-registered user should start unverified")
	}
	if result.User.Role != enums.RoleCustomer {
		t.Errorf("role = %s, want customer", result.User.Role)
	}
	if len(repo.otps) != 1 {
		t.Fatalf("otps = %d, want 1", len(repo.otps))
	}
	if len(sender.messages) != 1 || sender.messages[0].To != "new@example.com" {
		t.Fatalf("unexpected notifications %+v", sender.messages)
	}
	if !strings.Contains(sender.messages[0].Body, repo.otps[0].Code) {
		t.Error("notification does not carry the otp code")
	}
	if len(users.users) != 1 {
		t.Errorf("users = %d, want 1", len(users.users))
	}
}

func TestVerifyOTPMarksVerified(t *testing.T) {
	repo, users, _, svc := newAuthFixtures(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name: "U", Phone: "555-0101", Email: "u@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.VerifyOTP(context.Background(), "u@example.com", repo.otps[0].Code); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	if !users.users[result.User.ID].IsVerified {
		t.Error("user not marked verified")
	}
	if len(repo.otps) != 0 {
		t.Error("otps not cleared after verification")
	}
}

func TestVerifyOTPRejectsExpiredCode(t *testing.T) {
	repo, _, _, svc := newAuthFixtures(t)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "U", Phone: "555-0102", Email: "x@example.com", Password: "pw",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }

	err := svc.VerifyOTP(context.Background(), "x@example.com", repo.otps[0].Code)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginMintsToken(t *testing.T) {
	_, users, _, svc := newAuthFixtures(t)
	addVerifiedUser(t, users, "555-0103", "v@example.com", "s3cret!")

	result, err := svc.Login(context.Background(), LoginInput{Phone: "555-0103", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	jwtCfg, _ := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Role != enums.RoleCustomer {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, users, _, svc := newAuthFixtures(t)
	addVerifiedUser(t, users, "555-0104", "w@example.com", "right")

	_, err := svc.Login(context.Background(), LoginInput{Phone: "555-0104", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnverifiedIsForbidden(t *testing.T) {
	_, users, _, svc := newAuthFixtures(t)
	user := addVerifiedUser(t, users, "555-0105", "uv@example.com", "pw")
	user.IsVerified = false

	_, err := svc.Login(context.Background(), LoginInput{Phone: "555-0105", Password: "pw"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestLoginInactiveIsForbidden(t *testing.T) {
	_, users, _, svc := newAuthFixtures(t)
	user := addVerifiedUser(t, users, "555-0106", "in@example.com", "pw")
	user.Status = enums.UserStatusInactive

	_, err := svc.Login(context.Background(), LoginInput{Phone: "555-0106", Password: "pw"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	_, users, sender, svc := newAuthFixtures(t)
	user := addVerifiedUser(t, users, "555-0107", "r@example.com", "old-pw")

	if err := svc.ForgotPassword(context.Background(), "r@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("notifications = %d, want 1", len(sender.messages))
	}

	// the raw token is the 64-char hex run inside the mail body
	body := sender.messages[0].Body
	var token string
	for _, word := range strings.Fields(body) {
		word = strings.TrimSuffix(word, ".")
		if len(word) == 64 {
			token = word
			break
		}
	}
	if token == "" {
		t.Fatalf("no token found in body %q", body)
	}

	if err := svc.ResetPassword(context.Background(), ResetInput{Token: token, NewPassword: "new-pw"}); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	ok, err := security.VerifyPassword("new-pw", users.users[user.ID].PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password does not verify: ok=%v err=%v", ok, err)
	}

	// token is single use
	err = svc.ResetPassword(context.Background(), ResetInput{Token: token, NewPassword: "again"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error on reuse, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	_, _, sender, svc := newAuthFixtures(t)

	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Errorf("notifications = %d, want 0", len(sender.messages))
	}
}
