package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
	"go.uber.org/zap"
)

// Analyzer runs one analysis per request: token, fetch, bucket.
type Analyzer struct {
	log    *zap.Logger
	tokens TokenSource
	posts  PostFetcher
}

func NewAnalyzer(log *zap.Logger, tokens TokenSource, posts PostFetcher) *Analyzer {
	return &Analyzer{log: log, tokens: tokens, posts: posts}
}

func (a *Analyzer) Analyze(ctx context.Context, req entity.AnalyzeRequest) (entity.Analysis, error) {
	log := a.log.With(
		zap.String("subreddit", req.Subreddit),
		zap.Int("limit", req.Limit),
		zap.Int("days", req.Days),
	)

	token, err := a.tokens.Token(ctx)
	if err != nil {
		log.Warn("token", zap.Error(err))
		return entity.Analysis{}, err
	}

	posts, err := a.posts.FetchRecent(ctx, token, req.Subreddit, req.Limit)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) && upErr.Status == http.StatusUnauthorized {
			// Token was revoked early; the next request will re-authenticate.
			a.tokens.Invalidate()
		}
		log.Warn("fetch posts", zap.Error(err))
		return entity.Analysis{}, err
	}
	if len(posts) == 0 {
		return entity.Analysis{}, ErrNoPosts
	}

	res := Analyze(posts)
	log.Debug("analyzed",
		zap.Int("posts", len(posts)),
		zap.Int("buckets", len(res.HeatmapData)),
	)
	return res, nil
}
