package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/artifact"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

var contentTypes = map[string]string{
	artifact.Manifest:   "text/x-php; charset=utf-8",
	artifact.Shortcode:  "text/x-php; charset=utf-8",
	artifact.Stylesheet: "text/css; charset=utf-8",
	artifact.Script:     "application/javascript; charset=utf-8",
	artifact.Readme:     "text/plain; charset=utf-8",
}

type documentsResponse struct {
	Revision  int                `json:"revision"`
	Documents artifact.Documents `json:"documents"`
}

// Documents returns every generated document of the session, for the code
// viewer.
func Documents(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Sessions.Get(r.Context(), sessionID(r))
		if err != nil {
			writeError(w, d, err)
			return
		}

		docs, err := d.Exporter.Documents(sess.Config)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, documentsResponse{Revision: sess.Revision, Documents: docs})
	}
}

// Document returns one generated document as its raw text.
func Document(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		sess, err := d.Sessions.Get(r.Context(), sessionID(r))
		if err != nil {
			writeError(w, d, err)
			return
		}

		docs, err := d.Exporter.Documents(sess.Config)
		if err != nil {
			writeError(w, d, err)
			return
		}

		doc, ok := docs.Get(name)
		if !ok {
			writeJSON(w, d, http.StatusNotFound, errorResponse{
				Error: fmt.Sprintf("unknown document %q", name),
			})
			return
		}

		w.Header().Set("Content-Type", contentTypes[doc.Name])
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Forge-Path", doc.Path)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc.Content)); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

