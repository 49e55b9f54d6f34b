package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/forge/internal/config"
	"github.com/MrSnakeDoc/forge/internal/export"
	"github.com/MrSnakeDoc/forge/internal/httpserver"
	"github.com/MrSnakeDoc/forge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/forge/internal/index"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/redis"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
	"github.com/MrSnakeDoc/forge/internal/session"
	redisstore "github.com/MrSnakeDoc/forge/internal/store/redis"
	"github.com/MrSnakeDoc/forge/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.PresetReloader
	collector   *scheduler.SessionCollector // nil when redis expires sessions
}

func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	memIndex := index.NewMemoryIndex()

	var (
		redisClient    *goredis.Client
		store          *redisstore.Store
		sessionStore   session.Store       = memIndex
		sessionCounter deps.SessionCounter = memIndex
		exportStats    deps.ExportStats
		archiveCache   export.ArchiveCache
		exportCounter  export.Counter
	)

	if cfg.UsesRedis() {
		// fail fast: redis was asked for explicitly
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.OptionsFromConfig(cfg), loggerClient.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		store = redisstore.NewStore(client)
		sessionStore = store
		sessionCounter = store
		archiveCache = store
		exportCounter = store
		exportStats = store

		// archives are keyed by configuration only: drop those of a previous build
		if err := store.FlushArchives(context.Background()); err != nil {
			loggerClient.Warn("failed to flush cached archives", logger.Error(err))
		}

		// Try to sync presets from Redis to memory on startup
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from presets file",
				logger.Error(err))
		}
	} else {
		loggerClient.Info("redis not configured, sessions are kept in memory")
	}

	sessions := session.NewService(sessionStore, memIndex, loggerClient, cfg.SessionTTL)
	exporter := export.NewService(archiveCache, exportCounter, loggerClient, cfg.ArchiveCacheTTL)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewPresetReloader(
		cfg.PresetFile,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		cfg.PresetWatch,
		reloadTrigger,
	)

	// redis expires sessions on its own
	var collector *scheduler.SessionCollector
	if !cfg.UsesRedis() {
		collector = scheduler.NewSessionCollector(memIndex, loggerClient.Named("gc"), cfg.GCInterval, sessions.Forget)
	}

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Build:              version.Get(),
		TimeNow:            time.Now,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		PresetFile:         cfg.PresetFile,
		RedisClient:        redisClient,
		MemoryIndex:        memIndex,
		SessionCounter:     sessionCounter,
		ExportStats:        exportStats,
		Sessions:           sessions,
		Exporter:           exporter,
		Clock:              scheduler.SystemClock{},
		Location:           cfg.Location,
		TickInterval:       cfg.TickInterval,
		RequestTimeout:     cfg.RequestTimeout,
		ExportBurst:        cfg.ExportBurst,
		ExportRefillPerMin: cfg.ExportRefillPerMin,
		ReloadTrigger:      reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		collector:   collector,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Forge v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Forge %s", version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start preset reloader (loads presets and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start preset reloader: %w", err)
	}
	a.logger.Info("preset reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start session collector: %w", err)
		}
		a.logger.Info("session collector started",
			logger.Duration("interval", a.cfg.GCInterval))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.reloader.Stop()
		if a.collector != nil {
			a.collector.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		if cerr := a.redisClient.Close(); cerr != nil {
			a.logger.Warnf("failed to close redis: %v", cerr)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if err != nil {
		return err
	}
	a.logger.Info("✅ Forge stopped cleanly")
	return nil
}
