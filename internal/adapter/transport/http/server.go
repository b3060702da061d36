package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
	"github.com/dayanaadylkhanova/reddit-analyzer/internal/service"
	"github.com/dayanaadylkhanova/reddit-analyzer/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var subredditRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,21}$`)

// Limits are the query defaults and bounds for /analyze.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
	DefaultDays  int
}

type Server struct {
	log      *zap.Logger
	addr     string
	analyzer service.AnalyzerPort
	limits   Limits
	httpSrv  *http.Server
}

func NewServer(log *zap.Logger, addr string, analyzer service.AnalyzerPort, limits Limits, corsOrigin string, m *metrics.Metrics) *Server {
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = 100
	}
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = 100
	}
	if limits.DefaultDays <= 0 {
		limits.DefaultDays = 30
	}
	s := &Server{log: log, addr: addr, analyzer: analyzer, limits: limits}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(log, m))
	r.Use(cors(corsOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Get("/analyze", s.handleAnalyze())
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	s.httpSrv = &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			latency := time.Since(start)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.ObserveHTTP(r.Method, route, ww.Status(), latency)

			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", latency),
			)
		})
	}
}

func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleAnalyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := s.parseAnalyzeRequest(r)
		if err != nil {
			s.writeError(w, err)
			return
		}

		res, err := s.analyzer.Analyze(r.Context(), req)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) parseAnalyzeRequest(r *http.Request) (entity.AnalyzeRequest, error) {
	q := r.URL.Query()
	req := entity.AnalyzeRequest{
		Subreddit: q.Get("subreddit"),
		Days:      s.limits.DefaultDays,
		Limit:     s.limits.DefaultLimit,
	}
	if req.Subreddit == "" {
		return req, service.NewValidationError("subreddit", "Subreddit is required")
	}
	if !subredditRe.MatchString(req.Subreddit) {
		return req, service.NewValidationError("subreddit", "invalid subreddit name")
	}

	// days is informational only; anything unusable falls back to the default.
	if n, err := strconv.Atoi(q.Get("days")); err == nil && n > 0 {
		req.Days = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, service.NewValidationError("limit", "limit must be an integer")
		}
		switch {
		case n < 1:
			// keep the default
		case n > s.limits.MaxLimit:
			req.Limit = s.limits.MaxLimit
		default:
			req.Limit = n
		}
	}
	return req, nil
}

// writeError maps the service error taxonomy onto HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		valErr  *service.ValidationError
		authErr *service.AuthError
		upErr   *service.UpstreamError
	)
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, entity.ErrorResponse{Error: valErr.Message})
	case errors.Is(err, service.ErrNoPosts):
		writeJSON(w, http.StatusNotFound, entity.ErrorResponse{Error: "No posts found"})
	case errors.As(err, &authErr):
		writeJSON(w, upstreamStatus(authErr.Status), entity.ErrorResponse{Error: authErr.Error()})
	case errors.As(err, &upErr):
		writeJSON(w, upstreamStatus(upErr.Status), entity.ErrorResponse{Error: upErr.Body})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, entity.ErrorResponse{Error: err.Error()})
	default:
		s.log.Error("analysis error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{Error: err.Error()})
	}
}

// upstreamStatus forwards 4xx/5xx as-is; anything else is reported as 502.
func upstreamStatus(status int) int {
	if status >= 400 && status <= 599 {
		return status
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
