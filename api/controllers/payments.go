package controllers

import (
	"net/http"
	"strings"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/responses"
	paymentsvc "github.com/TalhaZaheer1/SmartBridge-Backend/internal/payments"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
)

const paymentUploadsSubdir = "payment"

// GetPaymentConfig returns the manual payment instructions shown during
// recharge.
func GetPaymentConfig(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		view, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// UpdatePaymentConfig accepts a multipart form with optional text fields
// and optional wechat_qr / usdt_qr image files.
func UpdatePaymentConfig(svc paymentsvc.Service, uploads fileStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		var input paymentsvc.UpdateInput
		if v := strings.TrimSpace(r.FormValue("wechat_id")); v != "" {
			input.WechatID = &v
		}
		if v := strings.TrimSpace(r.FormValue("usdt_address")); v != "" {
			input.USDTAddress = &v
		}
		if v := strings.TrimSpace(r.FormValue("description1")); v != "" {
			input.Description1 = &v
		}
		if v := strings.TrimSpace(r.FormValue("description2")); v != "" {
			input.Description2 = &v
		}

		if uploads != nil {
			wechatQR, err := saveFormFile(r, uploads, "wechat_qr", paymentUploadsSubdir)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if wechatQR != "" {
				input.WechatQR = &wechatQR
			}

			usdtQR, err := saveFormFile(r, uploads, "usdt_qr", paymentUploadsSubdir)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if usdtQR != "" {
				input.USDTQr = &usdtQR
			}
		}

		view, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
