package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/halcyonlab/agenda-api/internal/dto"
	"github.com/halcyonlab/agenda-api/internal/feed"
	"github.com/halcyonlab/agenda-api/internal/repository"
	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

type feedSourceRepository interface {
	Get(ctx context.Context, userID string) (*repository.FeedSourceRecord, error)
	Upsert(ctx context.Context, record *repository.FeedSourceRecord) error
	Delete(ctx context.Context, userID string) error
}

// FeedService manages each user's registered external calendar feed.
type FeedService struct {
	repo   feedSourceRepository
	logger *zap.Logger
}

// NewFeedService constructs the service.
func NewFeedService(repo feedSourceRepository, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{repo: repo, logger: logger}
}

// Register stores the user's feed source. A URL subscribes to a hosted feed;
// a raw payload keeps uploaded calendar text.
func (s *FeedService) Register(ctx context.Context, userID string, req dto.RegisterFeedRequest) error {
	if (req.URL == "") == (req.Payload == "") {
		return appErrors.Clone(appErrors.ErrValidation, "exactly one of url or payload must be provided")
	}

	record := &repository.FeedSourceRecord{UserID: userID}
	if req.URL != "" {
		parsed, err := url.Parse(req.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return appErrors.Clone(appErrors.ErrValidation, "url must be absolute")
		}
		record.Kind = string(feed.SourceURL)
		record.Payload = req.URL
	} else {
		record.Kind = string(feed.SourceFile)
		record.Payload = req.Payload
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store feed source")
	}
	return nil
}

// Get returns the registered source, or nil when none exists.
func (s *FeedService) Get(ctx context.Context, userID string) (*repository.FeedSourceRecord, error) {
	record, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed source")
	}
	return record, nil
}

// Remove unregisters the user's feed.
func (s *FeedService) Remove(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove feed source")
	}
	return nil
}
