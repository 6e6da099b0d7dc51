package controllers

import (
	"context"
	"net/http"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/responses"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartBridge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers. The cache is
// optional infrastructure and is reported without failing the probe.
func HealthReady(cfg *config.Config, database, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartBridge-Env", cfg.App.Env)

		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}

		cacheStatus := "disabled"
		if cache != nil {
			cacheStatus = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				cacheStatus = "unavailable"
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready", "cache": cacheStatus})
	}
}
