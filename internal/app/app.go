package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/adapter/reddit"
	http_server "github.com/dayanaadylkhanova/reddit-analyzer/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"github.com/dayanaadylkhanova/reddit-analyzer/pkg/config"
	"github.com/dayanaadylkhanova/reddit-analyzer/pkg/metrics"
	"go.uber.org/zap"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	metrics  *metrics.Metrics
	tokens   *reddit.TokenCache
	analyzer *service.Analyzer
	server   *http_server.Server
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	// 1) Metrics
	m := metrics.New(info.Name, info.Release, info.Commit)

	// 2) Reddit: one transport per host, each with its own breaker
	breaker := reddit.BreakerConfig{
		Failures: uint(cfg.BreakerFailures),
		Window:   uint(cfg.BreakerWindow),
		Delay:    cfg.BreakerDelay,
	}
	trOpts := func() reddit.TransportOptions {
		return reddit.TransportOptions{
			HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
			UserAgent:  cfg.RedditUserAgent,
			Breaker:    breaker,
			Metrics:    m,
		}
	}
	tokens := reddit.NewTokenCache(
		log.Named("token"),
		reddit.NewTransport(log, "reddit-auth", trOpts()),
		cfg.RedditAuthURL,
		reddit.Credentials{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			Username:     cfg.RedditUsername,
			Password:     cfg.RedditPassword,
		},
		reddit.WithRefreshMargin(cfg.TokenRefreshMargin),
	)
	client := reddit.NewClient(log.Named("reddit"), reddit.NewTransport(log, "reddit-api", trOpts()), cfg.RedditAPIURL)

	// 3) Analyzer (ports: TokenSource + PostFetcher)
	an := service.NewAnalyzer(log.Named("analyzer"), tokens, client)

	// 4) HTTP server
	srv := http_server.NewServer(log, cfg.ListenAddr, an, http_server.Limits{
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
		DefaultDays:  cfg.DefaultDays,
	}, cfg.CORSAllowedOrigin, m)

	return &App{
		cfg:      cfg,
		info:     info,
		log:      log,
		metrics:  m,
		tokens:   tokens,
		analyzer: an,
		server:   srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server", zap.Error(err))
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == ErrAppShutdownNormal {
		a.log.Warn("http shutdown", zap.Error(err))
		runErr = ErrAppShutdownWithError
	}
	a.tokens.Invalidate()

	return runErr
}
