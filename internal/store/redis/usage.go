package redis

import (
	"context"
	"fmt"
	"strings"
)

// IncrementExports increments the export counter of a plugin slug
func (s *Store) IncrementExports(ctx context.Context, slug string) error {
	if err := s.client.Incr(ctx, ExportsKey(slug)).Err(); err != nil {
		return fmt.Errorf("failed to increment exports: %w", err)
	}
	return nil
}

// GetExportStats retrieves the export count of every slug
func (s *Store) GetExportStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)

	iter := s.client.Scan(ctx, 0, KeyPrefixExports+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		count, err := s.client.Get(ctx, key).Int64()
		if err != nil {
			continue
		}
		stats[strings.TrimPrefix(key, KeyPrefixExports)] = count
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get export stats: %w", err)
	}

	return stats, nil
}
