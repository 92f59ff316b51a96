package handlers

import (
	"context"
	"net/http"
	"time"

	"donorboard/internal/middleware"
	"donorboard/internal/sqlinline"
)

const healthTimeout = 2 * time.Second

// Health reports whether the database answers.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	var one int
	if err := a.SQL.QueryRow(ctx, sqlinline.QHealthPing).Scan(&one); err != nil {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("health check failed")
		a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
