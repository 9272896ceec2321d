package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	journalmodels "io.globetrek.app/internal/models/journal"
)

var (
	// ErrNotFound indicates the journal entry does not exist.
	ErrNotFound = errors.New("journal entry not found")
	// ErrForbidden indicates the entry belongs to another user.
	ErrForbidden = errors.New("journal entry belongs to another user")
)

// Store persists journal entries in PostgreSQL with a Redis read cache.
// It satisfies workflow.JournalStore.
type Store struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	logger   *zap.SugaredLogger
}

// NewStore creates a journal store backed by the given pool and cache.
func NewStore(postgres *pgxpool.Pool, redisClient *redis.Client, logger *zap.SugaredLogger) *Store {
	return &Store{
		postgres: postgres,
		redis:    redisClient,
		logger:   logger,
	}
}

// Insert writes one journal entry and its media URLs in a single
// transaction, so readers never observe an entry with partial media.
func (s *Store) Insert(ctx context.Context, entry *journalmodels.JournalEntry) error {
	tx, err := s.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	journalQuery := `
		INSERT INTO journals (id, owner_uid, title, location, entry_date, description, mishaps, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, journalQuery,
		entry.ID,
		entry.OwnerID,
		entry.Title,
		entry.Location,
		entry.Date,
		entry.Description,
		entry.Mishaps,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	// Media rows keep the attachment order via the position column
	mediaQuery := `
		INSERT INTO journal_media (journal_id, url, position, created_at)
		VALUES ($1, $2, $3, $4)
	`
	for i, url := range entry.MediaURLs {
		if _, err = tx.Exec(ctx, mediaQuery, entry.ID, url, i, entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert journal media: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal entry: %w", err)
	}

	// Cache writes are best effort; the entry is already durable
	s.cacheEntry(ctx, entry)
	s.InvalidateStats(ctx, entry.OwnerID)

	return nil
}

// GetByID fetches one entry, trying the Redis cache before PostgreSQL.
// Returns ErrForbidden when the entry exists but belongs to another user.
func (s *Store) GetByID(ctx context.Context, id, ownerUID string) (*journalmodels.JournalEntry, error) {
	if entry, ok := s.cachedEntry(ctx, id); ok {
		if entry.OwnerID != ownerUID {
			return nil, ErrForbidden
		}
		return entry, nil
	}

	query := `
		SELECT id, owner_uid, title, location, entry_date, description, COALESCE(mishaps, ''), created_at
		FROM journals
		WHERE id = $1
	`
	var entry journalmodels.JournalEntry
	err := s.postgres.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Title,
		&entry.Location,
		&entry.Date,
		&entry.Description,
		&entry.Mishaps,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch journal entry: %w", err)
	}

	if entry.OwnerID != ownerUID {
		return nil, ErrForbidden
	}

	entry.MediaURLs, err = s.fetchMedia(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	s.cacheEntry(ctx, &entry)
	return &entry, nil
}

// ListByOwner returns all entries for a user, newest trip date first, with
// media URLs in attachment order.
func (s *Store) ListByOwner(ctx context.Context, ownerUID string) ([]journalmodels.JournalEntry, error) {
	query := `
		SELECT id, owner_uid, title, location, entry_date, description, COALESCE(mishaps, ''), created_at
		FROM journals
		WHERE owner_uid = $1
		ORDER BY entry_date DESC, created_at DESC
	`
	rows, err := s.postgres.Query(ctx, query, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
	}
	defer rows.Close()

	var entries []journalmodels.JournalEntry
	ids := make([]string, 0)
	for rows.Next() {
		var entry journalmodels.JournalEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.OwnerID,
			&entry.Title,
			&entry.Location,
			&entry.Date,
			&entry.Description,
			&entry.Mishaps,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.MediaURLs = []string{}
		entries = append(entries, entry)
		ids = append(ids, entry.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	mediaQuery := `
		SELECT journal_id, url
		FROM journal_media
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, position
	`
	mediaRows, err := s.postgres.Query(ctx, mediaQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal media: %w", err)
	}
	defer mediaRows.Close()

	byID := make(map[string]*journalmodels.JournalEntry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}

	for mediaRows.Next() {
		var journalID, url string
		if err := mediaRows.Scan(&journalID, &url); err != nil {
			return nil, fmt.Errorf("failed to scan journal media: %w", err)
		}
		if entry, ok := byID[journalID]; ok {
			entry.MediaURLs = append(entry.MediaURLs, url)
		}
	}
	if err := mediaRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal media: %w", err)
	}

	return entries, nil
}

// ActiveOwners returns the owner UIDs of entries created since the given
// cutoff. Used by the stats warmer to decide whose caches to refresh.
func (s *Store) ActiveOwners(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT owner_uid FROM journals WHERE created_at >= $1
	`
	rows, err := s.postgres.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan owner uid: %w", err)
		}
		owners = append(owners, uid)
	}
	return owners, rows.Err()
}

// DeleteByOwner removes all entries for a user. Media rows cascade.
// Uploaded files in the media store are not touched.
func (s *Store) DeleteByOwner(ctx context.Context, ownerUID string) error {
	ids := make([]string, 0)
	rows, err := s.postgres.Query(ctx, `SELECT id FROM journals WHERE owner_uid = $1`, ownerUID)
	if err != nil {
		return fmt.Errorf("failed to list journal entries: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan journal id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read journal ids: %w", err)
	}

	if _, err := s.postgres.Exec(ctx, `DELETE FROM journals WHERE owner_uid = $1`, ownerUID); err != nil {
		return fmt.Errorf("failed to delete journal entries: %w", err)
	}

	// Drop stale cache keys for the removed entries
	for _, id := range ids {
		s.redis.Del(ctx, entryCacheKey(id))
	}
	s.InvalidateStats(ctx, ownerUID)

	return nil
}

// fetchMedia returns the media URLs for one entry in attachment order.
func (s *Store) fetchMedia(ctx context.Context, journalID string) ([]string, error) {
	query := `
		SELECT url FROM journal_media WHERE journal_id = $1 ORDER BY position
	`
	rows, err := s.postgres.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal media: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan media url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
