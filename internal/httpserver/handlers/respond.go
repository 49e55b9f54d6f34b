package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/export"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error  string              `json:"error"`
	Notice string              `json:"notice,omitempty"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

// writeError maps err to a status code and a JSON error body.
func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	var (
		verr    *domain.ValidationError
		failure *export.Failure
		resp    = errorResponse{Error: err.Error()}
		status  = http.StatusInternalServerError
	)

	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		resp.Error = "invalid configuration"
		resp.Fields = verr.Fields
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPresetNotFound):
		status = http.StatusBadRequest
	case errors.As(err, &failure):
		resp.Error = "export failed"
		resp.Notice = failure.Notice
		d.Logger.Error("export failed", logger.Error(err))
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	default:
		d.Logger.Error("request failed", logger.Error(err))
	}

	writeJSON(w, d, status, resp)
}

var errBadRequest = errors.New("bad request")

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
