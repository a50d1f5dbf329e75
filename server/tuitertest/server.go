// Package tuitertest starts an in-process tuiter backend for tests.
package tuitertest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kachalmers/tuiter/server/internal/api"
	"github.com/kachalmers/tuiter/server/internal/store/memory"
)

// Server is a running backend over a fresh in-memory store.
type Server struct {
	*httptest.Server
	// BaseURL is the API root, ending in /api.
	BaseURL string
}

// NewServer starts a backend that is closed when tb finishes.
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	ts := httptest.NewServer(api.NewRouter(memory.New(), api.Options{
		BcryptCost: bcrypt.MinCost,
		Logger:     zerolog.Nop(),
	}))
	tb.Cleanup(ts.Close)
	return &Server{Server: ts, BaseURL: strings.TrimRight(ts.URL, "/") + "/api"}
}
