package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSourceRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedSourceRepository(db)

	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "kind", "payload", "updated_at"}).
		AddRow("u1", "url", "https://calendar.example/u1.ics", updated)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, kind, payload, updated_at FROM feed_sources WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(rows)

	record, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "url", record.Kind)
	assert.Equal(t, "https://calendar.example/u1.ics", record.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedSourceRepositoryGetUnregistered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedSourceRepository(db)

	mock.ExpectQuery("SELECT .+ FROM feed_sources").
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedSourceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedSourceRepository(db)

	mock.ExpectExec("INSERT INTO feed_sources").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &FeedSourceRecord{UserID: "u1", Kind: "file", Payload: "BEGIN:VCALENDAR"}
	require.NoError(t, repo.Upsert(context.Background(), record))
	assert.False(t, record.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedSourceRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeedSourceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM feed_sources WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
