//go:build integration
// +build integration

package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	client "github.com/kachalmers/tuiter/client"
	"github.com/kachalmers/tuiter/client/integration_test/scenarios"
)

var baseURL string

// TestMain waits for the backend health endpoint before running tests.
func TestMain(m *testing.M) {
	baseURL = os.Getenv("TUITER_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:4000/api"
	}
	if err := waitForHealthy(baseURL, 30*time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// waitForHealthy polls GET {base}/health until it reports UP. Backends without
// a health route are accepted once GET {base}/users answers 200.
func waitForHealthy(base string, timeout time.Duration) error {
	hc := &http.Client{Timeout: 2 * time.Second}
	probe := func() error {
		resp, err := hc.Get(base + "/health")
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode == http.StatusNotFound {
			users, err := hc.Get(base + "/users")
			if err != nil {
				return err
			}
			_ = users.Body.Close()
			if users.StatusCode != http.StatusOK {
				return fmt.Errorf("users probe: status %d", users.StatusCode)
			}
			return nil
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK || body.Status != "UP" {
			return fmt.Errorf("health: status %d %q", resp.StatusCode, body.Status)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = timeout
	if err := backoff.Retry(probe, bo); err != nil {
		return fmt.Errorf("tuiter backend not healthy at %s within %s: %w", base, timeout, err)
	}
	return nil
}

func TestScenarios_LiveBackend(t *testing.T) {
	c, err := client.New(baseURL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	scenarios.Run(t, c)
}

func TestLiveBackend_UnknownTuitIsNotFound(t *testing.T) {
	c, err := client.New(baseURL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	defer c.Close()

	_, err = c.GetTuit(context.Background(), "000000000000000000000000")
	if !client.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}
