package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/daniel/portfolio-api/internal/analytics"
	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/config"
	"github.com/daniel/portfolio-api/internal/metrics"
	"github.com/daniel/portfolio-api/internal/server/middleware"
	"github.com/daniel/portfolio-api/internal/server/ratelimit"
)

// Rate limit rules per endpoint group. Assessments reach the model and
// remote sites, so they carry the strictest budget; login is throttled to
// slow password guessing.
var (
	assessRule = ratelimit.Rule{Name: "assess", Limit: 10, Window: time.Hour, Burst: 3}
	chatRule   = ratelimit.Rule{Name: "chat", Limit: 20, Window: time.Minute, Burst: 5}
	loginRule  = ratelimit.Rule{Name: "login", Limit: 5, Window: time.Minute}
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	service    *assess.Service
	store      *analytics.Store
	limiter    *ratelimit.Limiter
	jwtService *JWTService
	admin      *config.AdminConfig
	validate   *validator.Validate
	logger     *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port                  int
	RateLimitEnabled      bool
	RateLimitCleanupEvery time.Duration
}

// Deps carries the server's collaborators. Store may be nil; the admin
// listing then reports analytics as unconfigured. The server takes
// ownership of Store and closes it on shutdown.
type Deps struct {
	Service *assess.Service
	Store   *analytics.Store
	JWT     *config.JWTConfig
	Admin   *config.AdminConfig
	Logger  *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Service == nil {
		return nil, fmt.Errorf("assessment service is required")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("JWT configuration is required")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("admin configuration is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	metrics.Init()

	s := &Server{
		service:    deps.Service,
		store:      deps.Store,
		jwtService: NewJWTService(deps.JWT),
		admin:      deps.Admin,
		validate:   validator.New(),
		logger:     deps.Logger,
	}
	s.limiter = ratelimit.NewLimiter(cfg.RateLimitEnabled, cfg.RateLimitCleanupEvery)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/assess", s.limit(assessRule, s.handleAssess))
	mux.HandleFunc("POST /api/chat", s.limit(chatRule, s.handleChat))
	mux.HandleFunc("POST /api/admin/login", s.limit(loginRule, s.handleAdminLogin))
	mux.Handle("GET /api/admin/assessments",
		middleware.RequireAuth(s.jwtService)(http.HandlerFunc(s.handleListAssessments)))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // assessments wait on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.limiter != nil {
		s.limiter.Stop()
	}

	s.store.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", s.extractClientID(r)),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// limit wraps a handler with one rate limit rule.
func (s *Server) limit(rule ratelimit.Rule, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.limiter.Allow(clientID, rule)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next(w, r)
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; deployments behind a trusted
// proxy should terminate X-Forwarded-For there.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit
// information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset_at", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
