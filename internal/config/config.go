package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, streams excluded (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Countdown
	Location     *time.Location // zone server-side previews interpret targets in
	TickInterval time.Duration  // preview stream cadence (default: 1s)

	// Presets and sessions
	PresetFile      string        // optional YAML presets file, empty = built-in presets only
	PresetWatch     bool          // reload the presets file when it changes
	ReloadInterval  time.Duration // interval to reload presets (default: 1h)
	GCInterval      time.Duration // interval to collect expired in-memory sessions (default: 5m)
	SessionTTL      time.Duration // idle lifetime of an editing session (default: 2h)
	ArchiveCacheTTL time.Duration // lifetime of cached archives in redis (default: 24h)

	// Export rate limiting, per client IP
	ExportBurst        int
	ExportRefillPerMin int

	// Redis (optional, empty address => in-memory storage)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS []string // optional, restrict infra endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FORGE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("FORGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("FORGE_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("FORGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FORGE_PRETTY_LOG", true),

		// Countdown
		Location:     mustLocation("FORGE_LOCATION", time.Local),
		TickInterval: mustDuration("FORGE_TICK_INTERVAL", time.Second),

		// Presets and sessions
		PresetFile:      getenv("FORGE_PRESET_FILE", ""),
		PresetWatch:     mustBool("FORGE_PRESET_WATCH", true),
		ReloadInterval:  mustDuration("FORGE_RELOAD_INTERVAL", time.Hour),
		GCInterval:      mustDuration("FORGE_GC_INTERVAL", 5*time.Minute),
		SessionTTL:      mustDuration("FORGE_SESSION_TTL", 2*time.Hour),
		ArchiveCacheTTL: mustDuration("FORGE_ARCHIVE_CACHE_TTL", 24*time.Hour),

		ExportBurst:        getenvInt("FORGE_EXPORT_BURST", 5),
		ExportRefillPerMin: getenvInt("FORGE_EXPORT_REFILL_PER_MIN", 10),

		// Redis settings
		RedisAddr:             getenv("FORGE_REDIS_ADDR", ""),
		RedisUser:             getenv("FORGE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("FORGE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("FORGE_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("FORGE_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("FORGE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("FORGE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("FORGE_TRUST_PROXY", false),
	}

	// Validate Redis configuration
	if cfg.RedisAddr != "" {
		cfg.RedisDB = requireEnvInt("FORGE_REDIS_DB")
		if cfg.RedisPasswordRequired {
			cfg.RedisPassword = requireEnv("FORGE_REDIS_PASSWORD")
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// UsesRedis reports whether sessions, presets and archives are kept in redis
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// mustLocation loads an IANA zone name. An unknown zone is fatal.
func mustLocation(key string, def *time.Location) *time.Location {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid time zone for %s: %s", key, v))
	}
	return loc
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
