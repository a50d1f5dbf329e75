package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kachalmers/tuiter/client/internal/api"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client issues requests against one Tuiter REST backend. It is safe for
// concurrent use and keeps no state between calls.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	debug   bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL, the backend root including its /api
// prefix (e.g. http://localhost:4000/api).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Installed last so a later WithHTTPClient cannot drop it.
	if c.debug {
		c.http.Transport = &debugTransport{base: c.http.Transport, log: c.log}
	}
	return c, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateUser creates an account and returns it with its backend-assigned ID.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	start := time.Now()
	u, err := api.CreateUser(ctx, c.http, c.baseURL, req)
	observe(opCreateUser, start, err)
	return u, err
}

// ListUsers returns every account. Order is whatever the backend returns.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	start := time.Now()
	users, err := api.ListUsers(ctx, c.http, c.baseURL)
	observe(opListUsers, start, err)
	return users, err
}

// GetUser retrieves an account by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	start := time.Now()
	u, err := api.GetUser(ctx, c.http, c.baseURL, userID)
	observe(opGetUser, start, err)
	return u, err
}

// DeleteUser removes an account by ID and returns the backend acknowledgment.
func (c *Client) DeleteUser(ctx context.Context, userID string) (*DeleteResult, error) {
	start := time.Now()
	res, err := api.DeleteUser(ctx, c.http, c.baseURL, userID)
	observe(opDeleteUser, start, err)
	return res, err
}

// DeleteUsersByUsername removes every account named username. Mostly used
// to clean up test fixtures.
func (c *Client) DeleteUsersByUsername(ctx context.Context, username string) (*DeleteResult, error) {
	start := time.Now()
	res, err := api.DeleteUsersByUsername(ctx, c.http, c.baseURL, username)
	observe(opDeleteUsersByUsername, start, err)
	return res, err
}

// Login checks credentials and returns the authenticated account.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	start := time.Now()
	u, err := api.Login(ctx, c.http, c.baseURL, creds)
	observe(opLogin, start, err)
	return u, err
}

// --------------------------------------------------------------------
// Tuit operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateTuit posts a tuit authored by authorID.
func (c *Client) CreateTuit(ctx context.Context, authorID string, req CreateTuitRequest) (*Tuit, error) {
	start := time.Now()
	t, err := api.CreateTuit(ctx, c.http, c.baseURL, authorID, req)
	observe(opCreateTuit, start, err)
	return t, err
}

// ListTuits returns every tuit in one round trip.
func (c *Client) ListTuits(ctx context.Context) ([]Tuit, error) {
	start := time.Now()
	tuits, err := api.ListTuits(ctx, c.http, c.baseURL)
	observe(opListTuits, start, err)
	return tuits, err
}

// GetTuit retrieves a tuit by ID.
func (c *Client) GetTuit(ctx context.Context, tuitID string) (*Tuit, error) {
	start := time.Now()
	t, err := api.GetTuit(ctx, c.http, c.baseURL, tuitID)
	observe(opGetTuit, start, err)
	return t, err
}

// DeleteTuit removes a tuit by ID and returns the backend acknowledgment.
func (c *Client) DeleteTuit(ctx context.Context, tuitID string) (*DeleteResult, error) {
	start := time.Now()
	res, err := api.DeleteTuit(ctx, c.http, c.baseURL, tuitID)
	observe(opDeleteTuit, start, err)
	return res, err
}
