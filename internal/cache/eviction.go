package cache

import (
	"context"
	"time"
)

// EvictionResult contains statistics about an eviction run.
type EvictionResult struct {
	EvictedKeys []string      `json:"evicted_keys"`
	FreedBytes  int           `json:"freed_bytes"`
	Remaining   int           `json:"remaining"`
	Duration    time.Duration `json:"duration"`
}

// Evict deletes every snapshot fetched more than maxAge ago. maxAge <= 0
// evicts nothing.
func (s *store) Evict(ctx context.Context, maxAge time.Duration) (*EvictionResult, error) {
	startTime := time.Now()
	result := &EvictionResult{EvictedKeys: []string{}}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, e := range entries {
		if maxAge > 0 && e.Age(now) > maxAge {
			result.EvictedKeys = append(result.EvictedKeys, e.Key)
			result.FreedBytes += e.SizeBytes
			continue
		}
		result.Remaining++
	}

	if err := s.deleteKeys(ctx, result.EvictedKeys); err != nil {
		return nil, err
	}

	result.Duration = time.Since(startTime)
	if len(result.EvictedKeys) > 0 {
		s.logger.Info().
			Int("evicted", len(result.EvictedKeys)).
			Int("freed_bytes", result.FreedBytes).
			Msg("evicted stale snapshots")
	}
	return result, nil
}
