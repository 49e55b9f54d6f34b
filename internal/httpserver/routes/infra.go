package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/httpserver/handlers"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.With(infraOnly(d), timeout(d)).Get("/infra", handlers.Infra(d))
}
