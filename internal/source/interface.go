package source

import (
	"context"

	"github.com/timmy/mememania/internal/domain"
)

// MemeSource defines the interface for upstream meme providers.
type MemeSource interface {
	// GetSourceID returns the unique identifier for this source.
	GetSourceID() string

	// FetchMemes fetches up to count memes in a single upstream call.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - count: number of memes to request; callers validate the range.
	// Returns:
	//   - []domain.MemeRecord: projected records; empty when the provider has nothing to give.
	//   - error: wraps domain.ErrExternalService on transport or parsing failure.
	FetchMemes(ctx context.Context, count int) ([]domain.MemeRecord, error)
}
