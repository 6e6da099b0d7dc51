package payments

import (
	"context"
	"testing"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubPaymentsRepo struct {
	cfg *models.PaymentConfig
}

func (s *stubPaymentsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubPaymentsRepo) GetOrCreate(ctx context.Context) (*models.PaymentConfig, error) {
	if s.cfg == nil {
		s.cfg = &models.PaymentConfig{ID: uuid.New()}
	}
	copied := *s.cfg
	return &copied, nil
}

func (s *stubPaymentsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if v, ok := updates["wechat_qr"].(string); ok {
		s.cfg.WechatQR = &v
	}
	if v, ok := updates["wechat_id"].(string); ok {
		s.cfg.WechatID = &v
	}
	if v, ok := updates["usdt_qr"].(string); ok {
		s.cfg.USDTQr = &v
	}
	if v, ok := updates["usdt_address"].(string); ok {
		s.cfg.USDTAddress = &v
	}
	if v, ok := updates["description1"].(string); ok {
		s.cfg.Description1 = &v
	}
	if v, ok := updates["description2"].(string); ok {
		s.cfg.Description2 = &v
	}
	return nil
}

type stubFileDeleter struct {
	deleted []string
}

func (s *stubFileDeleter) Delete(ctx context.Context, relPath string) error {
	s.deleted = append(s.deleted, relPath)
	return nil
}

func TestGetCreatesSingletonOnFirstUse(t *testing.T) {
	repo := &stubPaymentsRepo{}
	svc, err := NewService(repo, &stubFileDeleter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	view, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.WechatQR != nil || view.USDTAddress != nil {
		t.Errorf("fresh config should be empty, got %+v", view)
	}
	if repo.cfg == nil {
		t.Error("singleton row was not created")
	}
}

func TestUpdateReplacingQRDeletesOldImage(t *testing.T) {
	oldQR := "payment/old-wechat.png"
	repo := &stubPaymentsRepo{cfg: &models.PaymentConfig{ID: uuid.New(), WechatQR: &oldQR}}
	files := &stubFileDeleter{}
	svc, err := NewService(repo, files)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	newQR := "payment/new-wechat.png"
	addr := "TX9z..."
	view, err := svc.Update(context.Background(), UpdateInput{WechatQR: &newQR, USDTAddress: &addr})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if view.WechatQR == nil || *view.WechatQR != newQR {
		t.Errorf("wechat qr = %v, want %q", view.WechatQR, newQR)
	}
	if view.USDTAddress == nil || *view.USDTAddress != addr {
		t.Errorf("usdt address = %v, want %q", view.USDTAddress, addr)
	}
	if len(files.deleted) != 1 || files.deleted[0] != oldQR {
		t.Errorf("deleted = %v, want [%q]", files.deleted, oldQR)
	}
}

func TestUpdateWithoutFieldsRejected(t *testing.T) {
	svc, err := NewService(&stubPaymentsRepo{}, &stubFileDeleter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Update(context.Background(), UpdateInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
