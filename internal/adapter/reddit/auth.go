package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"go.uber.org/zap"
)

const DefaultAuthURL = "https://www.reddit.com/api/v1/access_token"

// Credentials of a Reddit "script" app and the account it acts as.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// credential is replaced as a whole, never mutated.
type credential struct {
	token     string
	expiresAt time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TokenCache keeps one bearer token and refreshes it via the password grant
// once it is within the refresh margin of its expiry.
//
// Refreshes are not serialized: concurrent misses may each hit the token
// endpoint and the last stored credential wins.
type TokenCache struct {
	log     *zap.Logger
	tr      *Transport
	authURL string
	creds   Credentials
	margin  time.Duration
	now     func() time.Time

	cur atomic.Pointer[credential]
}

type TokenOption func(*TokenCache)

func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCache) {
		if now != nil {
			c.now = now
		}
	}
}

func WithRefreshMargin(d time.Duration) TokenOption {
	return func(c *TokenCache) {
		if d >= 0 {
			c.margin = d
		}
	}
}

func NewTokenCache(log *zap.Logger, tr *Transport, authURL string, creds Credentials, opts ...TokenOption) *TokenCache {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	c := &TokenCache{
		log:     log,
		tr:      tr,
		authURL: authURL,
		creds:   creds,
		margin:  time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token implements service.TokenSource.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	now := c.now()
	if cur := c.cur.Load(); cur != nil && now.Before(cur.expiresAt.Add(-c.margin)) {
		return cur.token, nil
	}
	return c.refresh(ctx, now)
}

// Invalidate implements service.TokenSource.
func (c *TokenCache) Invalidate() {
	c.cur.Store(nil)
}

func (c *TokenCache) refresh(ctx context.Context, issuedAt time.Time) (string, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.creds.Username},
		"password":   {c.creds.Password},
	}.Encode()

	resp, err := c.tr.do(ctx, endpointToken, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		c.tr.metrics.TokenRefresh("error")
		return "", fmt.Errorf("token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		c.tr.metrics.TokenRefresh("error")
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.tr.metrics.TokenRefresh("rejected")
		return "", &service.AuthError{Status: resp.StatusCode, Body: string(raw)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		c.tr.metrics.TokenRefresh("error")
		return "", fmt.Errorf("decode token response: %w", err)
	}
	// Bad resource-owner credentials come back as 200 {"error": "invalid_grant"}.
	if tr.Error != "" || tr.AccessToken == "" {
		c.tr.metrics.TokenRefresh("rejected")
		return "", &service.AuthError{Status: http.StatusUnauthorized, Body: string(raw)}
	}

	ttl := time.Duration(max(tr.ExpiresIn, 0)) * time.Second
	c.cur.Store(&credential{token: tr.AccessToken, expiresAt: issuedAt.Add(ttl)})
	c.tr.metrics.TokenRefresh("ok")
	c.log.Debug("reddit token refreshed", zap.Duration("ttl", ttl))
	return tr.AccessToken, nil
}
