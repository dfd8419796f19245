package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/models"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type fakeCommitmentRepo struct {
	commitments map[string]*models.Commitment
	created     *models.Commitment
	updated     *models.Commitment
	deleted     string
	err         error
}

func (f *fakeCommitmentRepo) ListByUser(context.Context, string) ([]models.Commitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Commitment, 0, len(f.commitments))
	for _, c := range f.commitments {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommitmentRepo) GetByID(_ context.Context, id string) (*models.Commitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.commitments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCommitmentRepo) Create(_ context.Context, commitment *models.Commitment) error {
	f.created = commitment
	return f.err
}

func (f *fakeCommitmentRepo) Update(_ context.Context, commitment *models.Commitment) error {
	f.updated = commitment
	return f.err
}

func (f *fakeCommitmentRepo) Delete(_ context.Context, _, id string) error {
	f.deleted = id
	return f.err
}

func TestCommitmentServiceCreate(t *testing.T) {
	repo := &fakeCommitmentRepo{}
	svc := NewCommitmentService(repo, nil, zap.NewNop())

	commitment, err := svc.Create(context.Background(), "u1", dto.CreateCommitmentRequest{
		Title: "Thesis", WeeklyCommitmentHours: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommitmentActive, commitment.Status)
	assert.Equal(t, "u1", commitment.UserID)
	assert.Same(t, commitment, repo.created)
}

func TestCommitmentServiceCreateRejectsNegativeHours(t *testing.T) {
	svc := NewCommitmentService(&fakeCommitmentRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", dto.CreateCommitmentRequest{
		Title: "Thesis", WeeklyCommitmentHours: -1,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCommitmentServiceCreateRejectsTargetBeforeStart(t *testing.T) {
	svc := NewCommitmentService(&fakeCommitmentRepo{}, nil, zap.NewNop())

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, -7)
	_, err := svc.Create(context.Background(), "u1", dto.CreateCommitmentRequest{
		Title: "Thesis", WeeklyCommitmentHours: 5, StartDate: &start, TargetDate: &target,
	})
	require.Error(t, err)
}

func TestCommitmentServiceUpdate(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeCommitmentRepo{commitments: map[string]*models.Commitment{
		"c1": {ID: "c1", UserID: "u1", Title: "Old", WeeklyCommitmentHours: 2, StartDate: start},
	}}
	svc := NewCommitmentService(repo, nil, zap.NewNop())

	updated, err := svc.Update(context.Background(), "u1", "c1", dto.UpdateCommitmentRequest{
		Title: "New", WeeklyCommitmentHours: 4, Status: "paused",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, models.CommitmentPaused, updated.Status)
	assert.Equal(t, 4.0, updated.WeeklyCommitmentHours)
}

func TestCommitmentServiceUpdateRejectsUnknownStatus(t *testing.T) {
	repo := &fakeCommitmentRepo{commitments: map[string]*models.Commitment{
		"c1": {ID: "c1", UserID: "u1", Title: "Old"},
	}}
	svc := NewCommitmentService(repo, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "u1", "c1", dto.UpdateCommitmentRequest{
		Title: "New", WeeklyCommitmentHours: 4, Status: "retired",
	})
	require.Error(t, err)
}

func TestCommitmentServiceGetScopesByUser(t *testing.T) {
	repo := &fakeCommitmentRepo{commitments: map[string]*models.Commitment{
		"c1": {ID: "c1", UserID: "someone-else"},
	}}
	svc := NewCommitmentService(repo, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "u1", "c1")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCommitmentServiceDelete(t *testing.T) {
	repo := &fakeCommitmentRepo{commitments: map[string]*models.Commitment{
		"c1": {ID: "c1", UserID: "u1"},
	}}
	svc := NewCommitmentService(repo, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "u1", "c1"))
	assert.Equal(t, "c1", repo.deleted)
}
