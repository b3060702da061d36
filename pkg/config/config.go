package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr   string
	LogLevel     string
	LogFormat    string
	MaxCPU       int
	ShutdownWait time.Duration

	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditAuthURL      string
	RedditAPIURL       string
	RedditUserAgent    string
	HTTPTimeout        time.Duration
	TokenRefreshMargin time.Duration

	DefaultLimit      int
	MaxLimit          int
	DefaultDays       int
	CORSAllowedOrigin string

	BreakerFailures int
	BreakerWindow   int
	BreakerDelay    time.Duration
}

// LoadEnvFiles loads every existing file in order. Variables already set in
// the environment are never overridden, so earlier files take precedence.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.ListenAddr = getenv("LISTEN_ADDR", "")
	if c.ListenAddr == "" {
		c.ListenAddr = ":" + getenv("PORT", "3001")
	}
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = getenv("LOG_FORMAT", "json")
	c.MaxCPU = intEnv("MAX_CPU", "0", &errs)
	c.ShutdownWait = durationEnv("SHUTDOWN_WAIT", "5s", &errs)

	c.RedditClientID = getenv("REDDIT_CLIENT_ID", "")
	c.RedditClientSecret = getenv("REDDIT_CLIENT_SECRET", "")
	c.RedditUsername = getenv("REDDIT_USERNAME", "")
	c.RedditPassword = getenv("REDDIT_PASSWORD", "")
	c.RedditAuthURL = getenv("REDDIT_AUTH_URL", "https://www.reddit.com/api/v1/access_token")
	c.RedditAPIURL = getenv("REDDIT_API_URL", "https://oauth.reddit.com")
	c.RedditUserAgent = getenv("REDDIT_USER_AGENT", "reddit-analyzer-script/1.0")
	// 0 leaves outbound requests bounded only by the caller's context.
	c.HTTPTimeout = durationEnv("HTTP_TIMEOUT", "0", &errs)
	c.TokenRefreshMargin = durationEnv("TOKEN_REFRESH_MARGIN", "60s", &errs)

	c.DefaultLimit = intEnv("DEFAULT_LIMIT", "100", &errs)
	c.MaxLimit = intEnv("MAX_LIMIT", "100", &errs)
	c.DefaultDays = intEnv("DEFAULT_DAYS", "30", &errs)
	c.CORSAllowedOrigin = getenv("CORS_ALLOWED_ORIGIN", "*")

	c.BreakerFailures = intEnv("BREAKER_FAILURES", "5", &errs)
	c.BreakerWindow = intEnv("BREAKER_WINDOW", "10", &errs)
	c.BreakerDelay = durationEnv("BREAKER_DELAY", "15s", &errs)

	for _, req := range []struct{ name, val string }{
		{"REDDIT_CLIENT_ID", c.RedditClientID},
		{"REDDIT_CLIENT_SECRET", c.RedditClientSecret},
		{"REDDIT_USERNAME", c.RedditUsername},
		{"REDDIT_PASSWORD", c.RedditPassword},
	} {
		if req.val == "" {
			errs = append(errs, fmt.Errorf("%s is required", req.name))
		}
	}
	if c.MaxLimit <= 0 {
		errs = append(errs, errors.New("MAX_LIMIT must be > 0"))
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		errs = append(errs, errors.New("DEFAULT_LIMIT must be in 1..MAX_LIMIT"))
	}
	if c.DefaultDays <= 0 {
		errs = append(errs, errors.New("DEFAULT_DAYS must be > 0"))
	}
	if c.ShutdownWait <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_WAIT must be > 0"))
	}
	if c.BreakerFailures < 0 {
		errs = append(errs, errors.New("BREAKER_FAILURES must be >= 0"))
	}
	if c.BreakerFailures > 0 && c.BreakerWindow < c.BreakerFailures {
		errs = append(errs, errors.New("BREAKER_WINDOW must be >= BREAKER_FAILURES"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k, def string, errs *[]error) int {
	v := getenv(k, def)
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", k, v))
	}
	return n
}

// durationEnv accepts any non-negative Go duration; a bare "0" is zero.
func durationEnv(k, def string, errs *[]error) time.Duration {
	v := getenv(k, def)
	d, err := time.ParseDuration(v)
	switch {
	case err != nil:
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", k, v))
	case d < 0:
		*errs = append(*errs, fmt.Errorf("%s must be >= 0", k))
	}
	return d
}
