package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/HerbHall/stinger/internal/testutil"
)

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(r chi.Router) {
	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"request_id": RequestIDFromContext(r.Context())})
	})
	r.Get("/api/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Addr = "127.0.0.1:0"
	opts.RateLimitEnabled = false
	return opts
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t))
	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Stinger-Version") == "" {
		t.Error("missing X-Stinger-Version header")
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t))
	serve(t, s, httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody))

	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `stinger_http_requests_total{method="GET",route="/api/health",status="200"}`) {
		t.Error("metrics output missing request counter for /api/health")
	}
}

func TestRequestID(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t), pingRegistrar{})

	t.Run("generated", func(t *testing.T) {
		rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/ping", http.NoBody))
		id := rec.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("expected generated request id")
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["request_id"] != id {
			t.Errorf("context id = %q, header id = %q", body["request_id"], id)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", http.NoBody)
		req.Header.Set(RequestIDHeader, "client-123")
		rec := serve(t, s, req)
		if got := rec.Header().Get(RequestIDHeader); got != "client-123" {
			t.Errorf("request id = %q, want client-123", got)
		}
	})

	t.Run("oversized replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", http.NoBody)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		rec := serve(t, s, req)
		if got := rec.Header().Get(RequestIDHeader); len(got) > maxRequestIDLen {
			t.Errorf("oversized request id was echoed (%d bytes)", len(got))
		}
	})
}

func TestNotFoundIsProblem(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t))
	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/nope", http.NoBody))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestPanicRecovered(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t), pingRegistrar{})
	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/panic", http.NoBody))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t), pingRegistrar{})

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := serve(t, s, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("missing Access-Control-Allow-Origin on preflight")
	}
}

func TestRateLimit(t *testing.T) {
	opts := testOptions()
	opts.RateLimitEnabled = true
	opts.RateLimitRequests = 2
	opts.RateLimitWindow = time.Minute
	s := New(opts, testutil.Logger(t), pingRegistrar{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/api/ping", http.NoBody))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("429 Content-Type = %q", ct)
			}
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
}

func TestAddr(t *testing.T) {
	s := New(testOptions(), testutil.Logger(t))
	if s.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", s.Addr())
	}
}
