package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/halcyonlab/agenda-api/internal/models"
)

const changeKindCommitments = "commitments"

// CommitmentRepository persists long-term goals.
type CommitmentRepository struct {
	db       *sqlx.DB
	notifier *Notifier
}

// NewCommitmentRepository constructs a commitment repository.
func NewCommitmentRepository(db *sqlx.DB, notifier *Notifier) *CommitmentRepository {
	return &CommitmentRepository{db: db, notifier: notifier}
}

const commitmentColumns = "id, user_id, title, weekly_commitment_hours, start_date, target_date, status, created_at, updated_at"

// ListByUser returns the user's commitments ordered by creation time.
func (r *CommitmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Commitment, error) {
	query := fmt.Sprintf("SELECT %s FROM commitments WHERE user_id = $1 ORDER BY created_at ASC, id ASC", commitmentColumns)
	var commitments []models.Commitment
	if err := r.db.SelectContext(ctx, &commitments, query, userID); err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	return commitments, nil
}

// GetByID fetches a commitment.
func (r *CommitmentRepository) GetByID(ctx context.Context, id string) (*models.Commitment, error) {
	query := fmt.Sprintf("SELECT %s FROM commitments WHERE id = $1", commitmentColumns)
	var commitment models.Commitment
	if err := r.db.GetContext(ctx, &commitment, query, id); err != nil {
		return nil, err
	}
	return &commitment, nil
}

// Create inserts a commitment.
func (r *CommitmentRepository) Create(ctx context.Context, commitment *models.Commitment) error {
	if commitment.ID == "" {
		commitment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if commitment.CreatedAt.IsZero() {
		commitment.CreatedAt = now
	}
	commitment.UpdatedAt = now
	if commitment.StartDate.IsZero() {
		commitment.StartDate = commitment.CreatedAt
	}
	const query = `INSERT INTO commitments (id, user_id, title, weekly_commitment_hours, start_date, target_date, status, created_at, updated_at)
VALUES (:id, :user_id, :title, :weekly_commitment_hours, :start_date, :target_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, commitment); err != nil {
		return fmt.Errorf("create commitment: %w", err)
	}
	r.publish(commitment.UserID)
	return nil
}

// Update modifies a commitment.
func (r *CommitmentRepository) Update(ctx context.Context, commitment *models.Commitment) error {
	commitment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE commitments SET title = :title, weekly_commitment_hours = :weekly_commitment_hours,
start_date = :start_date, target_date = :target_date, status = :status, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, commitment); err != nil {
		return fmt.Errorf("update commitment: %w", err)
	}
	r.publish(commitment.UserID)
	return nil
}

// Delete removes a commitment.
func (r *CommitmentRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM commitments WHERE id = $1 AND user_id = $2", id, userID); err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	r.publish(userID)
	return nil
}

func (r *CommitmentRepository) publish(userID string) {
	if r.notifier != nil {
		r.notifier.Publish(Change{Kind: changeKindCommitments, UserID: userID})
	}
}
