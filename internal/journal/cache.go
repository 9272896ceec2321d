package journal

import (
	"context"
	"encoding/json"
	"time"

	journalmodels "io.globetrek.app/internal/models/journal"
	"io.globetrek.app/internal/stats"
)

const (
	entryCacheTTL = 24 * time.Hour
	statsCacheTTL = time.Hour
)

func entryCacheKey(id string) string {
	return "journal:" + id
}

func statsCacheKey(ownerUID string) string {
	return "travel_stats:" + ownerUID
}

// cacheEntry stores the entry JSON in Redis. Failures are logged and
// ignored; PostgreSQL stays the source of truth.
func (s *Store) cacheEntry(ctx context.Context, entry *journalmodels.JournalEntry) {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warnw("failed to marshal journal entry for cache", "journal_id", entry.ID, "error", err)
		return
	}
	if err := s.redis.Set(ctx, entryCacheKey(entry.ID), entryJSON, entryCacheTTL).Err(); err != nil {
		s.logger.Warnw("failed to cache journal entry", "journal_id", entry.ID, "error", err)
	}
}

// cachedEntry returns the entry from Redis if present.
func (s *Store) cachedEntry(ctx context.Context, id string) (*journalmodels.JournalEntry, bool) {
	entryJSON, err := s.redis.Get(ctx, entryCacheKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var entry journalmodels.JournalEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		s.redis.Del(ctx, entryCacheKey(id))
		return nil, false
	}
	return &entry, true
}

// CachedStats returns the user's cached travel stats if present.
func (s *Store) CachedStats(ctx context.Context, ownerUID string) (*stats.TravelStats, bool) {
	statsJSON, err := s.redis.Get(ctx, statsCacheKey(ownerUID)).Result()
	if err != nil {
		return nil, false
	}
	var cached stats.TravelStats
	if err := json.Unmarshal([]byte(statsJSON), &cached); err != nil {
		s.redis.Del(ctx, statsCacheKey(ownerUID))
		return nil, false
	}
	return &cached, true
}

// CacheStats stores the user's travel stats with a short TTL.
func (s *Store) CacheStats(ctx context.Context, ownerUID string, travelStats stats.TravelStats) {
	statsJSON, err := json.Marshal(travelStats)
	if err != nil {
		s.logger.Warnw("failed to marshal travel stats for cache", "owner_uid", ownerUID, "error", err)
		return
	}
	if err := s.redis.Set(ctx, statsCacheKey(ownerUID), statsJSON, statsCacheTTL).Err(); err != nil {
		s.logger.Warnw("failed to cache travel stats", "owner_uid", ownerUID, "error", err)
	}
}

// InvalidateStats drops the user's cached travel stats. Called after every
// new entry so the dashboard never shows stale counts past one read.
func (s *Store) InvalidateStats(ctx context.Context, ownerUID string) {
	s.redis.Del(ctx, statsCacheKey(ownerUID))
}
