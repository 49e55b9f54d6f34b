package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// Reload queues a preset reload. Only one reload may be pending.
func Reload(d deps.Deps) http.HandlerFunc {
	source := d.PresetFile
	if source == "" {
		source = "builtin"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual presets reload triggered",
				logger.String("remote_ip", r.RemoteAddr),
				logger.String("source", source))
			writeJSON(w, d, http.StatusAccepted, reloadResponse{Status: "queued", Source: source})
		default:
			writeJSON(w, d, http.StatusTooManyRequests, errorResponse{
				Error:  http.StatusText(http.StatusTooManyRequests),
				Notice: "A presets reload is already pending.",
			})
		}
	}
}
