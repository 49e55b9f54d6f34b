package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/version"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	version.Info
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthzResponse{
			Status:        "ok",
			Info:          d.Build,
			UptimeSeconds: d.Now().Sub(start).Seconds(),
		})
	}
}
