package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"go.uber.org/zap"
)

const DefaultAPIURL = "https://oauth.reddit.com"

// Client reads listings from the OAuth API host.
type Client struct {
	log    *zap.Logger
	tr     *Transport
	apiURL string
}

func NewClient(log *zap.Logger, tr *Transport, apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{log: log, tr: tr, apiURL: strings.TrimRight(apiURL, "/")}
}

// FetchRecent implements service.PostFetcher. A successful response whose
// body is not a listing yields no posts rather than an error.
func (c *Client) FetchRecent(ctx context.Context, token, subreddit string, limit int) ([]entity.Post, error) {
	u := fmt.Sprintf("%s/r/%s/new?limit=%d", c.apiURL, url.PathEscape(subreddit), limit)

	resp, err := c.tr.do(ctx, endpointListing, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &service.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var l entity.Listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		c.log.Warn("malformed listing", zap.String("subreddit", subreddit), zap.Error(err))
		return []entity.Post{}, nil
	}
	return l.Posts(func(i int, err error) {
		c.log.Debug("skip listing child", zap.String("subreddit", subreddit), zap.Int("index", i), zap.Error(err))
	}), nil
}
