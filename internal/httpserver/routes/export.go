package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/forge/internal/httpserver/mw"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.ExportBurst,
		RefillPerIPPerMin: d.ExportRefillPerMin,
		MaxEntries:        10000,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
		Notice:            "Too many exports, please wait a moment before downloading again.",
		Now:               d.TimeNow,
	})

	api := r.With(limit, timeout(d))
	api.Post("/api/sessions/{id}/export", handlers.ExportSession(d))
	api.Post("/api/export", handlers.ExportConfig(d))
}
