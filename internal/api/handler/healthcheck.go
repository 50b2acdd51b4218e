package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

const healthcheckTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthcheckHandler responde 200 enquanto o banco responder ao ping
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				logrus.WithError(err).Warn("error responding to healthcheck")
				apiErrors.WriteError(w, apiErrors.ErrCommunication, "Banco de dados indisponível", nil)
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}
