package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/forge/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(infraOnly(d), mw.EnforceHost(d.AllowedHosts, d.Logger), timeout(d)).Post("/reload", handlers.Reload(d))
}
