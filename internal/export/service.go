// Package export turns configurations into downloadable plugin archives.
//
// Export is the only operation that can fail at runtime: failures reach the
// caller as *Failure carrying a user-facing notice, and never alter the
// configuration being exported.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/forge/internal/artifact"
	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/packaging"
)

// DefaultCacheTTL is how long generated archives are cached.
const DefaultCacheTTL = 24 * time.Hour

// DefaultNotice is shown when generation fails.
const DefaultNotice = "The plugin could not be generated. Your settings are unchanged, please try again."

// ArchiveCache stores archives by configuration fingerprint.
// A miss returns nil, nil.
type ArchiveCache interface {
	GetCachedArchive(ctx context.Context, fingerprint string) ([]byte, error)
	CacheArchive(ctx context.Context, fingerprint string, data []byte, ttl time.Duration) error
}

// Counter records successful exports per plugin slug.
type Counter interface {
	IncrementExports(ctx context.Context, slug string) error
}

// Failure is an export that could not complete.
type Failure struct {
	Notice string
	Err    error
}

func (f *Failure) Error() string {
	return "export failed: " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is a generated plugin archive.
type Result struct {
	Filename    string
	Slug        string
	Fingerprint string
	Data        []byte
	Cached      bool
}

// Service generates plugin archives.
type Service struct {
	cache   ArchiveCache
	counter Counter
	logger  logger.Logger
	ttl     time.Duration
	group   singleflight.Group

	render func(domain.Configuration) (artifact.Documents, error)
	build  func(artifact.Documents, string) ([]byte, error)
}

// NewService creates an export service. cache and counter are optional.
func NewService(cache ArchiveCache, counter Counter, log logger.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		cache:   cache,
		counter: counter,
		logger:  log,
		ttl:     ttl,
		render:  artifact.Render,
		build:   packaging.Build,
	}
}

// Documents renders the plugin documents of cfg, for inspection.
func (s *Service) Documents(cfg domain.Configuration) (artifact.Documents, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	docs, err := s.render(cfg)
	if err != nil {
		return nil, &Failure{Notice: DefaultNotice, Err: err}
	}
	return docs, nil
}

// Export generates the archive of cfg. Identical configurations are served
// from the cache and concurrent identical exports share one generation.
// Invalid configurations return *domain.ValidationError; generation problems
// return *Failure.
func (s *Service) Export(ctx context.Context, cfg domain.Configuration) (*Result, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slug := cfg.Identity.Slug
	fp := cfg.Fingerprint()
	res := &Result{Filename: packaging.Filename(slug), Slug: slug, Fingerprint: fp}

	if data := s.cached(ctx, fp); data != nil {
		res.Data = data
		res.Cached = true
		s.count(ctx, slug)
		return res, nil
	}

	// cached once per generation, whoever waits on it
	v, err, _ := s.group.Do(fp, func() (any, error) {
		data, err := s.generate(cfg)
		if err != nil {
			return nil, err
		}
		s.store(ctx, fp, slug, data)
		return data, nil
	})
	if err != nil {
		s.logger.Error("export failed",
			logger.String("slug", slug),
			logger.Error(err))
		return nil, err
	}
	res.Data = v.([]byte)

	s.count(ctx, slug)
	s.logger.Info("plugin exported",
		logger.String("slug", slug),
		logger.Int("bytes", len(res.Data)))
	return res, nil
}

func (s *Service) cached(ctx context.Context, fp string) []byte {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.GetCachedArchive(ctx, fp)
	if err != nil {
		s.logger.Warn("archive cache lookup failed", logger.Error(err))
		return nil
	}
	return data
}

func (s *Service) store(ctx context.Context, fp, slug string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheArchive(ctx, fp, data, s.ttl); err != nil {
		s.logger.Warn("failed to cache archive",
			logger.String("slug", slug),
			logger.Error(err))
	}
}

func (s *Service) count(ctx context.Context, slug string) {
	if s.counter == nil {
		return
	}
	if err := s.counter.IncrementExports(ctx, slug); err != nil {
		s.logger.Warn("failed to count export",
			logger.String("slug", slug),
			logger.Error(err))
	}
}

// generate renders and packages cfg, turning every error and panic into a
// *Failure.
func (s *Service) generate(cfg domain.Configuration) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = &Failure{Notice: DefaultNotice, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	docs, err := s.render(cfg)
	if err != nil {
		return nil, &Failure{Notice: DefaultNotice, Err: fmt.Errorf("failed to render documents: %w", err)}
	}

	data, err = s.build(docs, cfg.Identity.Slug)
	if err != nil {
		return nil, &Failure{Notice: DefaultNotice, Err: fmt.Errorf("failed to package plugin: %w", err)}
	}
	return data, nil
}

// NoticeOf returns the user-facing notice of err, or "" when err is not an
// export failure.
func NoticeOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Notice
	}
	return ""
}
