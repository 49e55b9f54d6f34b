package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/export"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/logger"
)

// ExportSession downloads the session's plugin archive. The session is
// discarded once the archive has been produced; a failed export leaves it
// untouched.
func ExportSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)

		sess, err := d.Sessions.Get(r.Context(), id)
		if err != nil {
			writeError(w, d, err)
			return
		}

		res, err := d.Exporter.Export(r.Context(), sess.Config)
		if err != nil {
			writeError(w, d, err)
			return
		}

		if err := d.Sessions.Discard(r.Context(), id); err != nil {
			d.Logger.Warn("failed to discard exported session",
				logger.String("session_id", id),
				logger.Error(err))
		}

		writeArchive(w, d, res)
	}
}

// ExportConfig downloads the archive of the configuration in the request
// body, without a session. ?preset= lays a preset over it first.
func ExportConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// omitted fields keep their default value
		cfg := domain.Default()
		if err := decodeJSON(w, r, &cfg); err != nil {
			writeError(w, d, err)
			return
		}

		if name := r.URL.Query().Get("preset"); name != "" {
			preset, ok := d.MemoryIndex.GetPreset(name)
			if !ok {
				writeError(w, d, domain.PresetNotFound(name, d.MemoryIndex.GetAllPresets()))
				return
			}
			cfg = preset.Apply(cfg)
		}

		res, err := d.Exporter.Export(r.Context(), cfg)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeArchive(w, d, res)
	}
}

func writeArchive(w http.ResponseWriter, d deps.Deps, res *export.Result) {
	cache := "MISS"
	if res.Cached {
		cache = "HIT"
	}

	d.Logger.Info("plugin exported",
		logger.String("slug", res.Slug),
		logger.String("fingerprint", res.Fingerprint),
		logger.String("cache", cache),
		logger.Int("bytes", len(res.Data)))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Forge-Fingerprint", res.Fingerprint)
	w.Header().Set("X-Forge-Cache", cache)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		d.Logger.Debug("failed to write archive", logger.Error(err))
	}
}
