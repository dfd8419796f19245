package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appErrors "github.com/halcyonlab/agenda-api/pkg/errors"
)

// Adapter turns a feed source into raw candidate events. Fetch and parse
// failures degrade to an empty list so the rest of the dashboard stays
// usable; the failure is logged and reported through the returned error for
// callers that want to surface a degraded state, but is never fatal.
type Adapter struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewAdapter constructs the adapter. A nil logger falls back to a no-op.
func NewAdapter(fetcher Fetcher, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{fetcher: fetcher, logger: logger}
}

// Load produces the raw events behind the source. The returned slice is never
// nil. When the source cannot be fetched or parsed, the slice is empty and
// the error carries the FEED_UNAVAILABLE code; callers decide whether to
// expose the degradation, and must not treat it as fatal.
func (a *Adapter) Load(ctx context.Context, src Source) ([]RawEvent, error) {
	body, err := a.payload(ctx, src)
	if err != nil {
		a.logger.Warn("feed load failed",
			zap.String("kind", string(src.Kind)),
			zap.Error(err))
		return []RawEvent{}, appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, appErrors.ErrFeedUnavailable.Message)
	}

	events, err := Parse(body)
	if err != nil {
		a.logger.Warn("feed parse failed",
			zap.String("kind", string(src.Kind)),
			zap.Error(err))
		return []RawEvent{}, appErrors.Wrap(err, appErrors.ErrFeedUnavailable.Code, appErrors.ErrFeedUnavailable.Status, "calendar feed malformed")
	}

	a.logger.Debug("feed loaded",
		zap.String("kind", string(src.Kind)),
		zap.Int("event_count", len(events)))
	return events, nil
}

func (a *Adapter) payload(ctx context.Context, src Source) ([]byte, error) {
	switch src.Kind {
	case SourceFile:
		return []byte(src.Payload), nil
	case SourceURL:
		if a.fetcher == nil {
			return nil, fmt.Errorf("no fetcher configured for url source")
		}
		return a.fetcher.Fetch(ctx, src.Payload)
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}
