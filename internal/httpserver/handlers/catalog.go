package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
)

// Defaults returns the configuration new sessions start from.
func Defaults(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, http.StatusOK, domain.Default())
	}
}

type presetsResponse struct {
	Presets []*domain.Preset `json:"presets"`
	Count   int              `json:"count"`
}

// Presets lists the available presets, sorted by name.
func Presets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presets := d.MemoryIndex.GetAllPresets()
		writeJSON(w, d, http.StatusOK, presetsResponse{
			Presets: presets,
			Count:   len(presets),
		})
	}
}
