package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheArchive stores a packaged plugin under its configuration fingerprint
func (s *Store) CacheArchive(ctx context.Context, fingerprint string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, ArchiveKey(fingerprint), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache archive: %w", err)
	}
	return nil
}

// GetCachedArchive retrieves a cached archive. A miss returns nil, nil.
func (s *Store) GetCachedArchive(ctx context.Context, fingerprint string) ([]byte, error) {
	data, err := s.client.Get(ctx, ArchiveKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached archive: %w", err)
	}
	return data, nil
}

// FlushArchives removes all cached archives
func (s *Store) FlushArchives(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixArchive+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete archive key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush archives: %w", err)
	}
	return nil
}
