package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/httpserver/handlers"
)

func init() { Register(registerSessions) }

func registerSessions(r chi.Router, d deps.Deps) {
	api := r.With(timeout(d))
	api.Post("/api/sessions", handlers.CreateSession(d))
	api.Get("/api/sessions/{id}", handlers.GetSession(d))
	api.Patch("/api/sessions/{id}", handlers.UpdateSession(d))
	api.Delete("/api/sessions/{id}", handlers.DeleteSession(d))
	api.Get("/api/sessions/{id}/preview", handlers.Preview(d))
	api.Get("/api/sessions/{id}/documents", handlers.Documents(d))
	api.Get("/api/sessions/{id}/documents/{name}", handlers.Document(d))

	// long-lived: no request timeout
	r.Get("/api/sessions/{id}/stream", handlers.Stream(d))
}
