package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kachalmers/tuiter/server/internal/store"
	"github.com/kachalmers/tuiter/server/internal/store/memory"
)

type flakyStore struct {
	store.Store
	down atomic.Bool
}

func (f *flakyStore) Ping(ctx context.Context) error {
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return f.Store.Ping(ctx)
}

func TestStoreHealthChecker_FollowsPing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &flakyStore{Store: memory.New()}
	hc := store.NewStoreHealthChecker(s, zerolog.Nop(), 100*time.Millisecond)
	if hc.IsHealthy() {
		t.Fatalf("checker must start unhealthy")
	}
	go hc.Start(ctx, 10*time.Millisecond)

	waitFor(t, hc.IsHealthy)
	s.down.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() })
	s.down.Store(false)
	waitFor(t, hc.IsHealthy)
}

func waitFor(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
