package service

import (
	"context"
	"time"

	"github.com/timmy/mememania/internal/domain"
	"github.com/timmy/mememania/internal/logger"
	"github.com/timmy/mememania/internal/source"
)

// MemeService applies the safe-for-work policy on top of a meme source.
type MemeService struct {
	source source.MemeSource
}

// NewMemeService creates a new meme service.
// Parameters:
//   - src: upstream meme source.
// Returns:
//   - *MemeService: initialized service.
func NewMemeService(src source.MemeSource) *MemeService {
	return &MemeService{source: src}
}

// GetMemes fetches memes, drops NSFW entries and truncates to count.
// When every fetched meme was NSFW the batch is discarded and fetched once more;
// a second all-NSFW batch is accepted as final. Source errors from either
// attempt are returned unchanged.
// Parameters:
//   - ctx: request context.
//   - count: requested number of memes, already validated by the caller.
// Returns:
//   - *domain.MemeBatchResult: at most count safe memes.
//   - error: non-nil if the upstream call failed.
func (s *MemeService) GetMemes(ctx context.Context, count int) (*domain.MemeBatchResult, error) {
	start := time.Now()

	raw, err := s.source.FetchMemes(ctx, count)
	if err != nil {
		return nil, err
	}
	safe := filterSafe(raw)

	if len(safe) == 0 && len(raw) > 0 {
		logger.With(logger.Fields{
			logger.FieldAttempt: 1,
			logger.FieldCount:   len(raw),
		}).Info(ctx, "All fetched memes were NSFW, fetching again")

		raw, err = s.source.FetchMemes(ctx, count)
		if err != nil {
			return nil, err
		}
		safe = filterSafe(raw)
	}

	if len(safe) > count {
		safe = safe[:count]
	}

	logger.With(logger.Fields{
		logger.FieldCount:      len(safe),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug(ctx, "GetMemes completed: requested=%d, source=%s", count, s.source.GetSourceID())

	return domain.NewMemeBatchResult(safe), nil
}

// filterSafe returns the records not flagged NSFW, preserving order.
func filterSafe(memes []domain.MemeRecord) []domain.MemeRecord {
	safe := make([]domain.MemeRecord, 0, len(memes))
	for _, m := range memes {
		if !m.NSFW {
			safe = append(safe, m)
		}
	}
	return safe
}
