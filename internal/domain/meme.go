package domain

// MemeRecord is a single meme as returned to tool callers.
// Records are produced per request and never stored.
type MemeRecord struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Subreddit string `json:"subreddit"`
	NSFW      bool   `json:"nsfw"`
	PostLink  string `json:"post_link"`
}

// MemeBatchResult is the result of a get_memes call.
// Count always equals len(Memes).
type MemeBatchResult struct {
	Memes []MemeRecord `json:"memes"`
	Count int          `json:"count"`
}

// NewMemeBatchResult builds a batch result from the given records.
// Parameters:
//   - memes: records to return; nil is normalized to an empty slice.
// Returns:
//   - *MemeBatchResult: result whose Count matches the number of records.
func NewMemeBatchResult(memes []MemeRecord) *MemeBatchResult {
	if memes == nil {
		memes = []MemeRecord{}
	}
	return &MemeBatchResult{
		Memes: memes,
		Count: len(memes),
	}
}
