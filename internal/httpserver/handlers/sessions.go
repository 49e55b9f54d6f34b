package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/session"
)

// sessionID is the {id} URL parameter of every session route
func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.CreateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}

		sess, err := d.Sessions.Create(r.Context(), req)
		if err != nil {
			writeError(w, d, err)
			return
		}

		d.Logger.Info("session created",
			logger.String("session_id", sess.ID),
			logger.String("preset", req.Preset))
		w.Header().Set("Location", "/api/sessions/"+sess.ID)
		writeJSON(w, d, http.StatusCreated, sess)
	}
}

func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Sessions.Get(r.Context(), sessionID(r))
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, sess)
	}
}

// UpdateSession applies one edit. A rejected edit leaves the session as it was.
func UpdateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.UpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}

		sess, err := d.Sessions.Update(r.Context(), sessionID(r), req)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, sess)
	}
}

func DeleteSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)
		if err := d.Sessions.Delete(r.Context(), id); err != nil {
			writeError(w, d, err)
			return
		}
		d.Logger.Debug("session deleted", logger.String("session_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
