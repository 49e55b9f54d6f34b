package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool             `json:"ok"`
	PresetsLoaded  *int             `json:"presets_loaded,omitempty"`
	SessionsActive *int             `json:"sessions_active,omitempty"`
	LastReload     string           `json:"last_reload,omitempty"`
	Exports        map[string]int64 `json:"exports,omitempty"`
	Source         string           `json:"source,omitempty"`
	Mode           string           `json:"mode,omitempty"`
	Impact         string           `json:"impact,omitempty"`
	Error          string           `json:"error,omitempty"`
}

type infraResponse struct {
	StorageMode string                     `json:"storage_mode"`
	Status      string                     `json:"status"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		presetsCount := d.MemoryIndex.PresetCount()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		source := "builtin"
		if d.PresetFile != "" {
			source = d.PresetFile
		}

		components := map[string]componentStatus{
			"presets": {
				OK:            presetsCount > 0,
				PresetsLoaded: &presetsCount,
				LastReload:    lastReloadStr,
				Source:        source,
			},
			"sessions": checkSessions(r.Context(), d),
			"redis":    checkRedis(r.Context(), d),
		}
		if d.ExportStats != nil {
			components["exports"] = checkExports(r.Context(), d)
		}

		storageMode := "memory"
		if d.RedisClient != nil {
			storageMode = "redis"
		}

		response := infraResponse{
			StorageMode: storageMode,
			Status:      determineStatus(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineStatus(components map[string]componentStatus) string {
	if presets, exists := components["presets"]; exists {
		if !presets.OK || (presets.PresetsLoaded != nil && *presets.PresetsLoaded == 0) {
			return "critical" // No presets = nothing to start a session from
		}
	}

	if sessions, exists := components["sessions"]; exists && !sessions.OK {
		return "critical"
	}

	// Redis down = degraded (no archive cache, no export stats)
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}

	return "operational"
}

func checkSessions(ctx context.Context, d deps.Deps) componentStatus {
	if d.SessionCounter == nil {
		return componentStatus{OK: false, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := d.SessionCounter.CountSessions(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true, SessionsActive: &count}
}

func checkExports(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	stats, err := d.ExportStats.GetExportStats(ctx)
	if err != nil {
		return componentStatus{OK: false, Mode: "degraded", Error: err.Error()}
	}
	return componentStatus{OK: true, Exports: stats}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "in-memory-sessions",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "sessions-unavailable",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "archive-cache-enabled",
		Error:  "none",
	}
}
