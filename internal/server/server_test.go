package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/config"
	"github.com/daniel/portfolio-api/internal/jobdesc"
	"github.com/daniel/portfolio-api/internal/llm"
	"github.com/daniel/portfolio-api/internal/metrics"
	"github.com/daniel/portfolio-api/internal/profile"
	"github.com/daniel/portfolio-api/internal/server/ratelimit"
)

const testAdminPassword = "correct-horse-battery"

const testAssessmentJSON = `{
  "fit_score": 82,
  "verdict": "strong_fit",
  "strengths": ["Go services", "API design"],
  "gaps": ["No Rust"],
  "summary": "Good backend match."
}`

// testAdminHash is computed once; bcrypt is deliberately slow.
var testAdminHash = func() string {
	h, err := config.HashPassword(testAdminPassword, "", 10)
	if err != nil {
		panic(err)
	}
	return h
}()

// fakeLLM implements llm.Client with canned replies.
type fakeLLM struct {
	jsonReply    string
	jsonErr      error
	contentReply string
	contentErr   error
}

func (f *fakeLLM) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return f.contentReply, f.contentErr
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.jsonReply, f.jsonErr
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeLLM) Close() error                  { return nil }

// newTestServer wires a server around a fake model client. The analytics
// store is left nil and rate limiting disabled; tests that need either
// override the field.
func newTestServer(client llm.Client) *Server {
	metrics.Init()

	resolver := jobdesc.NewResolver(jobdesc.Options{})
	owner := &profile.Profile{
		Name:   "Daniel Reyes",
		Title:  "Senior Backend Engineer",
		Skills: []string{"Go", "PostgreSQL"},
	}

	s := &Server{
		service: assess.NewService(resolver, client, owner, nil),
		jwtService: NewJWTService(&config.JWTConfig{
			Secret:    "test-secret-key-for-jwt-signing-min-32",
			ExpiresIn: time.Hour,
		}),
		admin:    &config.AdminConfig{PasswordHash: testAdminHash},
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	s.limiter = ratelimit.NewLimiter(false, time.Minute)
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51234"
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// TestHealthEndpoint tests the /health endpoint
func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp["status"])
	}
}

func TestAssessEndpoint_TextInput(t *testing.T) {
	s := newTestServer(&fakeLLM{jsonReply: testAssessmentJSON})

	body, _ := json.Marshal(AssessRequest{
		Prompt: "We need a Go engineer. Responsibilities: build APIs. Qualifications: Go, PostgreSQL.",
	})
	w := postJSON(t, s.handleAssess, "/api/assess", string(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result assess.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if result.InputType != jobdesc.InputTypeText {
		t.Errorf("expected input_type text, got %q", result.InputType)
	}
	if result.Assessment == nil || result.Assessment.FitScore != 82 {
		t.Errorf("unexpected assessment: %+v", result.Assessment)
	}
	if result.ExtractedURL != "" {
		t.Errorf("expected no extracted URL, got %q", result.ExtractedURL)
	}
}

func TestAssessEndpoint_MissingPrompt(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	w := postJSON(t, s.handleAssess, "/api/assess", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Prompt") {
		t.Errorf("expected validation message naming Prompt, got %s", w.Body.String())
	}
}

func TestAssessEndpoint_InvalidJSON(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	w := postJSON(t, s.handleAssess, "/api/assess", `not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAssessEndpoint_BlockedURL(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	body, _ := json.Marshal(AssessRequest{Prompt: "http://localhost/careers/42"})
	w := postJSON(t, s.handleAssess, "/api/assess", string(body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !strings.Contains(resp["error"], "provide the job description text directly") {
		t.Errorf("expected paste-the-text guidance, got %q", resp["error"])
	}
}

func TestAssessEndpoint_ModelFailure(t *testing.T) {
	s := newTestServer(&fakeLLM{jsonErr: context.DeadlineExceeded})

	body, _ := json.Marshal(AssessRequest{Prompt: "A long enough pasted job description for the model."})
	w := postJSON(t, s.handleAssess, "/api/assess", string(body))

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	// Internal failure details must not leak into the response.
	if strings.Contains(resp["error"], "deadline") {
		t.Errorf("internal error leaked to client: %q", resp["error"])
	}
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(&fakeLLM{contentReply: "Daniel has shipped several Go services."})

	body, _ := json.Marshal(ChatRequest{Message: "What has Daniel built in Go?"})
	w := postJSON(t, s.handleChat, "/api/chat", string(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Reply != "Daniel has shipped several Go services." {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	w := postJSON(t, s.handleChat, "/api/chat", `{"message": ""}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestChatEndpoint_ModelFailure(t *testing.T) {
	s := newTestServer(&fakeLLM{contentErr: context.DeadlineExceeded})

	w := postJSON(t, s.handleChat, "/api/chat", `{"message": "hello"}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	s := newTestServer(&fakeLLM{})
	s.limiter = ratelimit.NewLimiter(true, time.Minute)
	defer s.limiter.Stop()

	rule := ratelimit.Rule{Name: "test", Limit: 2, Window: time.Minute}
	handler := s.limit(rule, s.handleHealth)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		w := httptest.NewRecorder()
		handler(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("expected X-RateLimit-Limit 2, got %q", got)
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	s := newTestServer(&fakeLLM{})
	s.limiter = ratelimit.NewLimiter(true, time.Minute)
	defer s.limiter.Stop()

	rule := ratelimit.Rule{Name: "test", Limit: 1, Window: time.Minute}
	handler := s.limit(rule, s.handleHealth)

	for _, addr := range []string{"10.0.0.1:100", "10.0.0.2:100"} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("client %s: expected 200, got %d", addr, w.Code)
		}
	}
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "198.51.100.9:44012"
	if got := s.extractClientID(req); got != "198.51.100.9" {
		t.Errorf("expected 198.51.100.9, got %q", got)
	}

	req.RemoteAddr = "no-port-here"
	if got := s.extractClientID(req); got != "no-port-here" {
		t.Errorf("expected raw RemoteAddr fallback, got %q", got)
	}
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(Config{Port: 8080}, Deps{
		JWT:   &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing-min-32", ExpiresIn: time.Hour},
		Admin: &config.AdminConfig{PasswordHash: testAdminHash},
	})
	if err == nil {
		t.Fatal("expected error when service is missing")
	}
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(&fakeLLM{})

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/assess", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS headers on preflight response")
	}
}
