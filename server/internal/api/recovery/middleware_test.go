package recovery

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestMiddlewarePanic verifies that a panic inside the handler results in 500.
func TestMiddlewarePanic(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	// ensure minimal body returned
	if body, _ := io.ReadAll(rr.Body); len(body) == 0 {
		t.Fatalf("expected response body")
	}
}

// TestMiddlewareLogsToRequestLogger verifies the panic is logged via the context logger.
func TestMiddlewareLogsToRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("tuit store exploded")
	}))

	req := httptest.NewRequest("POST", "/api/users", nil)
	req = req.WithContext(log.WithContext(req.Context()))
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, "panic recovered") || !strings.Contains(out, "tuit store exploded") {
		t.Fatalf("panic not logged: %s", out)
	}
}

// TestMiddlewareAbortHandler verifies http.ErrAbortHandler is re-raised.
func TestMiddlewareAbortHandler(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

// TestMiddlewarePassThru verifies regular handler passes untouched.
func TestMiddlewarePassThru(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

// TestMiddlewareFallsBackToDefaultContextLogger covers requests without a logger in context.
func TestMiddlewareFallsBackToDefaultContextLogger(t *testing.T) {
	var buf bytes.Buffer
	fallback := zerolog.New(&buf)
	prev := zerolog.DefaultContextLogger
	zerolog.DefaultContextLogger = &fallback
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("no request logger")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tuits", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "no request logger") {
		t.Fatalf("panic not logged to default context logger: %s", buf.String())
	}
}
