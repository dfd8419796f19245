package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// FeedSourceRecord is a user's registered external feed.
type FeedSourceRecord struct {
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FeedSourceRepository stores one feed source per user.
type FeedSourceRepository struct {
	db *sqlx.DB
}

// NewFeedSourceRepository constructs a feed source repository.
func NewFeedSourceRepository(db *sqlx.DB) *FeedSourceRepository {
	return &FeedSourceRepository{db: db}
}

// Get returns the user's feed source, or sql.ErrNoRows when none registered.
func (r *FeedSourceRepository) Get(ctx context.Context, userID string) (*FeedSourceRecord, error) {
	const query = "SELECT user_id, kind, payload, updated_at FROM feed_sources WHERE user_id = $1"
	var record FeedSourceRecord
	if err := r.db.GetContext(ctx, &record, query, userID); err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert registers or replaces the user's feed source.
func (r *FeedSourceRepository) Upsert(ctx context.Context, record *FeedSourceRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO feed_sources (user_id, kind, payload, updated_at)
VALUES (:user_id, :kind, :payload, :updated_at)
ON CONFLICT (user_id) DO UPDATE SET kind = EXCLUDED.kind, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert feed source: %w", err)
	}
	return nil
}

// Delete removes the user's feed source.
func (r *FeedSourceRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM feed_sources WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("delete feed source: %w", err)
	}
	return nil
}
