package memeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/mememania/internal/domain"
	"github.com/timmy/mememania/internal/logger"
)

const (
	SourceID    = "memeapi"
	ServiceName = "Meme API"

	DefaultBaseURL = "https://meme-api.com"
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the meme-api client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client fetches memes from meme-api.com (or a compatible server).
// It implements source.MemeSource and is safe for concurrent use.
type Client struct {
	client *resty.Client
}

// upstream element keys, in the order they are projected
var requiredFields = []string{"title", "url", "subreddit", "nsfw", "postLink"}

// NewClient creates a new meme-api client.
// Parameters:
//   - cfg: client configuration; zero fields fall back to DefaultBaseURL and DefaultTimeout.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	baseURL := DefaultBaseURL
	timeout := DefaultTimeout
	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetLogger(logger.GetDefault())
	// retries are owned by the service layer
	client.SetRetryCount(0)

	return &Client{client: client}
}

// GetSourceID returns the unique identifier for this source
func (c *Client) GetSourceID() string {
	return SourceID
}

// FetchMemes issues GET /gimme/{count} and projects the reply into meme records.
// A non-200 status or a missing/empty "memes" field yields an empty slice and no error.
// Transport failures, undecodable bodies and elements lacking an expected field
// fail the whole batch with a *domain.ExternalServiceError.
func (c *Client) FetchMemes(ctx context.Context, count int) ([]domain.MemeRecord, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("count", strconv.Itoa(count)).
		Get("/gimme/{count}")
	if err != nil {
		return nil, domain.NewExternalServiceError(ServiceName, err)
	}

	if resp.StatusCode() != http.StatusOK {
		logger.With(logger.Fields{
			logger.FieldStatus:     resp.StatusCode(),
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
		}).Warn(ctx, "Meme API returned non-200 status, treating as empty")
		return []domain.MemeRecord{}, nil
	}

	memes, err := decodeMemes(resp.Body())
	if err != nil {
		return nil, domain.NewExternalServiceError(ServiceName, err)
	}

	logger.With(logger.Fields{
		logger.FieldCount:      len(memes),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug(ctx, "Fetched memes: requested=%d", count)

	return memes, nil
}

// decodeMemes parses {"memes": [...]} into records.
func decodeMemes(body []byte) ([]domain.MemeRecord, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("failed to decode response: not a JSON object")
	}

	raw, ok := payload["memes"]
	if !ok || isFalsy(raw) {
		return []domain.MemeRecord{}, nil
	}

	var elems []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("failed to decode memes: %w", err)
	}

	memes := make([]domain.MemeRecord, 0, len(elems))
	for i, elem := range elems {
		meme, err := projectMeme(elem)
		if err != nil {
			return nil, fmt.Errorf("meme %d: %w", i, err)
		}
		memes = append(memes, meme)
	}

	return memes, nil
}

// projectMeme maps one upstream element onto a MemeRecord.
func projectMeme(elem map[string]json.RawMessage) (domain.MemeRecord, error) {
	var meme domain.MemeRecord
	if elem == nil {
		return meme, fmt.Errorf("element is not a JSON object")
	}

	for _, key := range requiredFields {
		if _, ok := elem[key]; !ok {
			return meme, fmt.Errorf("%w: '%s'", domain.ErrUpstreamFieldMissing, key)
		}
	}

	targets := map[string]interface{}{
		"title":     &meme.Title,
		"url":       &meme.URL,
		"subreddit": &meme.Subreddit,
		"nsfw":      &meme.NSFW,
		"postLink":  &meme.PostLink,
	}
	for _, key := range requiredFields {
		if err := json.Unmarshal(elem[key], targets[key]); err != nil {
			return meme, fmt.Errorf("field '%s': %w", key, err)
		}
	}

	return meme, nil
}

// isFalsy reports whether a JSON value is null, false, zero, or an empty string, array or object.
func isFalsy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}

	switch trimmed[0] {
	case 'n':
		return true
	case 'f':
		return string(trimmed) == "false"
	case '"':
		return string(trimmed) == `""`
	case '[':
		var arr []json.RawMessage
		return json.Unmarshal(trimmed, &arr) == nil && len(arr) == 0
	case '{':
		var obj map[string]json.RawMessage
		return json.Unmarshal(trimmed, &obj) == nil && len(obj) == 0
	case 't':
		return false
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		return err == nil && f == 0
	}
}
