package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"github.com/dayanaadylkhanova/reddit-analyzer/pkg/metrics"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"go.uber.org/zap"
)

const (
	endpointToken   = "token"
	endpointListing = "listing"

	// maxErrorBody caps how much of an error response is kept and forwarded.
	maxErrorBody = 64 << 10
)

// BreakerConfig trips the breaker after Failures failed calls out of the last
// Window calls and keeps it open for Delay. Failures == 0 disables it.
type BreakerConfig struct {
	Failures uint
	Window   uint
	Delay    time.Duration
}

type TransportOptions struct {
	HTTPClient *http.Client
	UserAgent  string
	Breaker    BreakerConfig
	Metrics    *metrics.Metrics
}

// Transport sends requests to one Reddit host. It sets the User-Agent Reddit
// insists on, records metrics and short-circuits while the host is failing.
// It never retries.
type Transport struct {
	log       *zap.Logger
	hc        *http.Client
	userAgent string
	exec      failsafe.Executor[*http.Response]
	metrics   *metrics.Metrics
}

func NewTransport(log *zap.Logger, name string, opts TransportOptions) *Transport {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	t := &Transport{log: log, hc: hc, userAgent: opts.UserAgent, metrics: opts.Metrics}

	if b := opts.Breaker; b.Failures > 0 {
		if b.Window < b.Failures {
			b.Window = b.Failures
		}
		if b.Delay <= 0 {
			b.Delay = 15 * time.Second
		}
		cb := circuitbreaker.NewBuilder[*http.Response]().
			WithFailureThresholdRatio(b.Failures, b.Window).
			WithDelay(b.Delay).
			WithSuccessThreshold(1).
			HandleIf(func(resp *http.Response, err error) bool {
				if err != nil {
					return true
				}
				return resp != nil && (resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests)
			}).
			OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
				log.Warn("circuit breaker state change",
					zap.String("breaker", name),
					zap.String("from", stateName(e.OldState)),
					zap.String("to", stateName(e.NewState)),
				)
			}).
			Build()
		t.exec = failsafe.With(cb)
	}
	return t
}

// do builds and sends one request. build is called once per attempt.
func (t *Transport) do(ctx context.Context, endpoint string, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	send := func() (*http.Response, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		if t.userAgent != "" {
			req.Header.Set("User-Agent", t.userAgent)
		}
		start := time.Now()
		resp, err := t.hc.Do(req)
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.metrics.ObserveUpstream(endpoint, status, time.Since(start))
		return resp, err
	}

	if t.exec == nil {
		return send()
	}
	resp, err := t.exec.WithContext(ctx).Get(send)
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, fmt.Errorf("%s: %w", endpoint, service.ErrUpstreamUnavailable)
	}
	return resp, err
}

func stateName(s circuitbreaker.State) string {
	switch s {
	case circuitbreaker.ClosedState:
		return "closed"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	case circuitbreaker.OpenState:
		return "open"
	default:
		return "unknown"
	}
}
