package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/lyvest/lyvest-backend/api/responses"
	"github.com/lyvest/lyvest-backend/pkg/config"
	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
	"github.com/lyvest/lyvest-backend/pkg/logger"
)

// Pinger is any dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lyvest-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every configured dependency. Nil pingers are skipped, so
// a memory-backed deployment with no database still reports ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lyvest-Env", cfg.App.Env)

		statuses := map[string]string{}
		var failed error
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "skipped"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				statuses[name] = "down"
				failed = multierr.Append(failed, err)
				continue
			}
			statuses[name] = "up"
		}

		if failed != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, failed, "dependency check failed").
				WithDetails(statuses)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
