package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/forge/internal/export"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
	"github.com/MrSnakeDoc/forge/internal/session"
	"github.com/MrSnakeDoc/forge/internal/version"
)

// SessionCounter reports how many editing sessions are alive.
type SessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

// ExportStats reports how many archives were exported per plugin slug.
type ExportStats interface {
	GetExportStats(ctx context.Context) (map[string]int64, error)
}

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Build              version.Info
	TimeNow            func() time.Time   // for testing, defaults to time.Now
	AllowedHosts       []string           // Host headers allowed to trigger a reload
	AllowedCIDRS       []string           // IPs allowed to access infra endpoints
	TrustProxy         bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	PresetFile         string             // Path to the presets file, empty when only built-ins are served
	RedisClient        *redis.Client      // Redis client connection, nil in memory mode
	MemoryIndex        *index.MemoryIndex // In-memory presets (and sessions in memory mode)
	SessionCounter     SessionCounter     // Whichever store holds the sessions
	ExportStats        ExportStats        // Export counters, nil in memory mode
	Sessions           *session.Service   // Editing sessions
	Exporter           *export.Service    // Document rendering and plugin archives
	Clock              scheduler.Clock    // Clock driving preview streams
	Location           *time.Location     // Zone previews interpret targets in
	TickInterval       time.Duration      // Preview stream cadence
	RequestTimeout     time.Duration      // Per-request timeout, streams excluded
	ExportBurst        int                // Export rate limit burst per client IP
	ExportRefillPerMin int                // Export rate limit refill per client IP
	ReloadTrigger      chan struct{}      // Channel to trigger manual preset reload
}

// Now returns the current time from TimeNow, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// Loc returns Location, falling back to the local zone.
func (d Deps) Loc() *time.Location {
	if d.Location != nil {
		return d.Location
	}
	return time.Local
}
