package service

import (
	"context"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
)

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=service

// AnalyzerPort is what the HTTP layer needs from the service.
type AnalyzerPort interface {
	Analyze(ctx context.Context, req entity.AnalyzeRequest) (entity.Analysis, error)
}

// TokenSource hands out a bearer token for the Reddit API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// PostFetcher reads the newest posts of a subreddit.
type PostFetcher interface {
	FetchRecent(ctx context.Context, token, subreddit string, limit int) ([]entity.Post, error)
}
