package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready         bool `json:"ready"`
	PresetsLoaded int  `json:"presets_loaded"`
}

// Readyz reports ready once the preset index has been populated.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.PresetCount()
		status := http.StatusOK
		if count == 0 {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:         count > 0,
			PresetsLoaded: count,
		})
	}
}
