package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	api := r.With(timeout(d))
	api.Get("/api/defaults", handlers.Defaults(d))
	api.Get("/api/presets", handlers.Presets(d))
}
