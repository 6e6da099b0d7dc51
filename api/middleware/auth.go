package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/responses"
	pkgauth "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/auth"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/db/models"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserLoader resolves the current account so revoked or deactivated users
// are rejected even while holding a valid token.
type UserLoader interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer token, reloads the account and seeds the request
// context with the verified identity.
func Auth(cfg config.JWTConfig, users UserLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if users != nil {
				user, err := users.FindUser(r.Context(), claims.UserID)
				if err != nil {
					if err == gorm.ErrRecordNotFound {
						responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists"))
						return
					}
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account"))
					return
				}
				if !user.IsVerified {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account is not verified"))
					return
				}
				if user.Status != enums.UserStatusActive {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account is inactive"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
