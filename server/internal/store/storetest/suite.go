// Package storetest holds the compliance suite every store.Store driver runs.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kachalmers/tuiter/server/internal/model"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// Run exercises the compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store for each subtest.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("UserLifecycle", func(t *testing.T) { testUserLifecycle(t, makeStore(t)) })
	t.Run("DuplicateUsername", func(t *testing.T) { testDuplicateUsername(t, makeStore(t)) })
	t.Run("DeleteByUsername", func(t *testing.T) { testDeleteByUsername(t, makeStore(t)) })
	t.Run("TuitLifecycle", func(t *testing.T) { testTuitLifecycle(t, makeStore(t)) })
	t.Run("TuitUnknownAuthor", func(t *testing.T) { testTuitUnknownAuthor(t, makeStore(t)) })
	t.Run("UserDeleteCascades", func(t *testing.T) { testUserDeleteCascades(t, makeStore(t)) })
	t.Run("ListOrder", func(t *testing.T) { testListOrder(t, makeStore(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, makeStore(t)) })
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func newUser(username string) *model.User {
	return &model.User{
		Username:     username,
		PasswordHash: "hash-" + username,
		Email:        username + "@example.test",
		JoinedOn:     now(),
	}
}

// unique returns a username that cannot collide with other runs sharing a database.
func unique(prefix string) string { return prefix + "-" + uuid.NewString()[:8] }

func testUserLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	in := newUser(unique("eleanorrigby"))
	in.FirstName, in.LastName = "Eleanor", "Rigby"
	created, err := s.Users().Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, in.Username, created.Username)
	assert.True(t, in.JoinedOn.Equal(created.JoinedOn), "joined %v != %v", in.JoinedOn, created.JoinedOn)

	got, err := s.Users().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Username, got.Username)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.PasswordHash, got.PasswordHash)
	assert.Equal(t, "Eleanor", got.FirstName)

	byName, err := s.Users().GetByUsername(ctx, in.Username)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	n, err := s.Users().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.Users().Get(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected not found, got %v", err)

	n, err = s.Users().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func testDuplicateUsername(t *testing.T, s store.Store) {
	ctx := context.Background()
	name := unique("moe")
	_, err := s.Users().Create(ctx, newUser(name))
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, newUser(name))
	assert.True(t, errors.Is(err, model.ErrConflict), "expected conflict, got %v", err)
}

func testDeleteByUsername(t *testing.T, s store.Store) {
	ctx := context.Background()
	name := unique("larry")
	other := unique("curley")
	_, err := s.Users().Create(ctx, newUser(name))
	require.NoError(t, err)
	keep, err := s.Users().Create(ctx, newUser(other))
	require.NoError(t, err)

	n, err := s.Users().DeleteByUsername(ctx, name)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	all, err := s.Users().List(ctx)
	require.NoError(t, err)
	for _, u := range all {
		assert.NotEqual(t, name, u.Username)
	}
	_, err = s.Users().Get(ctx, keep.ID)
	require.NoError(t, err)

	n, err = s.Users().DeleteByUsername(ctx, name)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func testTuitLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser(unique("rigby")))
	require.NoError(t, err)

	in := &model.Tuit{Tuit: "I'm living in a dream and waiting at the window", AuthorID: author.ID, PostedOn: now()}
	created, err := s.Tuits().Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Tuits().Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Tuit, got.Tuit)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.True(t, in.PostedOn.Equal(got.PostedOn))

	n, err := s.Tuits().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.Tuits().Get(ctx, created.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected not found, got %v", err)
}

func testTuitUnknownAuthor(t *testing.T, s store.Store) {
	_, err := s.Tuits().Create(context.Background(), &model.Tuit{Tuit: "orphan", AuthorID: uuid.NewString(), PostedOn: now()})
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected not found, got %v", err)
}

func testUserDeleteCascades(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser(unique("bob_ross")))
	require.NoError(t, err)
	tu, err := s.Tuits().Create(ctx, &model.Tuit{Tuit: "happy little trees", AuthorID: author.ID, PostedOn: now()})
	require.NoError(t, err)

	_, err = s.Users().Delete(ctx, author.ID)
	require.NoError(t, err)

	_, err = s.Tuits().Get(ctx, tu.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound), "expected tuit removed with author, got %v", err)
}

func testListOrder(t *testing.T, s store.Store) {
	ctx := context.Background()
	author, err := s.Users().Create(ctx, newUser(unique("alice")))
	require.NoError(t, err)

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		tu, err := s.Tuits().Create(ctx, &model.Tuit{Tuit: text, AuthorID: author.ID, PostedOn: now()})
		require.NoError(t, err)
		ids = append(ids, tu.ID)
	}

	all, err := s.Tuits().List(ctx)
	require.NoError(t, err)
	pos := map[string]int{}
	for i, tu := range all {
		pos[tu.ID] = i
	}
	for i := 1; i < len(ids); i++ {
		assert.Less(t, pos[ids[i-1]], pos[ids[i]], "tuits must list in insertion order")
	}
}

func testConcurrentCreates(t *testing.T, s store.Store) {
	ctx := context.Background()
	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().Create(ctx, newUser(unique("stooge")))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
