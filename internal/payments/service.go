package payments

import (
	"context"
	"fmt"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
)

type fileDeleter interface {
	Delete(ctx context.Context, relPath string) error
}

// Service exposes the manual payment instructions shown to customers.
type Service interface {
	Get(ctx context.Context) (*View, error)
	Update(ctx context.Context, input UpdateInput) (*View, error)
}

type service struct {
	repo  Repository
	files fileDeleter
}

func NewService(repo Repository, files fileDeleter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments: repository is required")
	}
	if files == nil {
		return nil, fmt.Errorf("payments: file deleter is required")
	}
	return &service{repo: repo, files: files}, nil
}

func (s *service) Get(ctx context.Context) (*View, error) {
	cfg, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment config")
	}
	return toView(cfg), nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*View, error) {
	cfg, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment config")
	}

	updates := map[string]any{}
	var replaced []string
	if input.WechatQR != nil {
		if cfg.WechatQR != nil && *cfg.WechatQR != *input.WechatQR {
			replaced = append(replaced, *cfg.WechatQR)
		}
		updates["wechat_qr"] = *input.WechatQR
	}
	if input.WechatID != nil {
		updates["wechat_id"] = *input.WechatID
	}
	if input.USDTQr != nil {
		if cfg.USDTQr != nil && *cfg.USDTQr != *input.USDTQr {
			replaced = append(replaced, *cfg.USDTQr)
		}
		updates["usdt_qr"] = *input.USDTQr
	}
	if input.USDTAddress != nil {
		updates["usdt_address"] = *input.USDTAddress
	}
	if input.Description1 != nil {
		updates["description1"] = *input.Description1
	}
	if input.Description2 != nil {
		updates["description2"] = *input.Description2
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, cfg.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment config")
	}

	// superseded QR images are cleaned up after the row is saved
	for _, path := range replaced {
		_ = s.files.Delete(ctx, path)
	}

	cfg, err = s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload payment config")
	}
	return toView(cfg), nil
}

func toView(cfg *models.PaymentConfig) *View {
	return &View{
		WechatQR:     cfg.WechatQR,
		WechatID:     cfg.WechatID,
		USDTQr:       cfg.USDTQr,
		USDTAddress:  cfg.USDTAddress,
		Description1: cfg.Description1,
		Description2: cfg.Description2,
	}
}
