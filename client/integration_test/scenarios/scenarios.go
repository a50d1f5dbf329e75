// Package scenarios holds the end-to-end client scenarios shared by the
// in-process and live-backend integration suites.
package scenarios

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/kachalmers/tuiter/client"
)

var rigby = client.CreateUserRequest{
	Username: "eleanorrigby",
	Password: "lonelypeople8566",
	Email:    "eleanorrigby@beatles.com",
}

const rigbyTuit = "I'm living in a dream and waiting at the window"

var stooges = []string{"larry", "curley", "moe"}

// Run executes every scenario against the backend c talks to. Scenarios clean
// up the usernames they use before and after running, so they may be pointed
// at a shared backend.
func Run(t *testing.T, c *client.Client) {
	t.Helper()

	t.Run("UserRoundTrip", func(t *testing.T) { testUserRoundTrip(t, c) })
	t.Run("LoginRoundTrip", func(t *testing.T) { testLoginRoundTrip(t, c) })
	t.Run("CreateTuit", func(t *testing.T) { testCreateTuit(t, c) })
	t.Run("FindTuitByID", func(t *testing.T) { testFindTuitByID(t, c) })
	t.Run("DeleteTuitThenNotFound", func(t *testing.T) { testDeleteTuitThenNotFound(t, c) })
	t.Run("FindAllTuits", func(t *testing.T) { testFindAllTuits(t, c) })
	t.Run("DeleteByUsername", func(t *testing.T) { testDeleteByUsername(t, c) })
}

func ctxFor(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// clean removes the usernames now and again when t finishes.
func clean(t *testing.T, c *client.Client, usernames ...string) {
	t.Helper()
	purge := func() error {
		for _, u := range usernames {
			if _, err := c.DeleteUsersByUsername(context.Background(), u); err != nil {
				return fmt.Errorf("delete %s: %w", u, err)
			}
		}
		return nil
	}
	require.NoError(t, purge())
	t.Cleanup(func() {
		if err := purge(); err != nil {
			t.Logf("cleanup: %v", err)
		}
	})
}

func testUserRoundTrip(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	created, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, rigby.Username, got.Username)
	assert.Equal(t, rigby.Email, got.Email)

	all, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Contains(t, usernamesOf(all), rigby.Username)

	res, err := c.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.DeletedCount, int64(1))

	_, err = c.GetUser(ctx, created.ID)
	assert.True(t, errors.Is(err, client.ErrNotFound), "expected not found, got %v", err)
}

func testLoginRoundTrip(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	created, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)

	u, err := c.Login(ctx, client.Credentials{Username: rigby.Username, Password: rigby.Password})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = c.Login(ctx, client.Credentials{Username: rigby.Username, Password: "not-" + rigby.Password})
	require.Error(t, err)
	assert.True(t, client.IsRemote(err), "bad credentials surface as a remote error, got %v", err)
}

func testCreateTuit(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	u, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)

	tu, err := c.CreateTuit(ctx, u.ID, client.CreateTuitRequest{Tuit: rigbyTuit})
	require.NoError(t, err)
	assert.Equal(t, rigbyTuit, tu.Tuit)
	assert.Equal(t, u.ID, tu.PostedBy.ID)

	res, err := c.DeleteTuit(ctx, tu.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.DeletedCount, int64(1))
}

func testFindTuitByID(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	u, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)
	created, err := c.CreateTuit(ctx, u.ID, client.CreateTuitRequest{Tuit: rigbyTuit})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = c.DeleteTuit(context.Background(), created.ID) })

	got, err := c.GetTuit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, rigbyTuit, got.Tuit)
	assert.Equal(t, u.ID, got.PostedBy.ID)
	if got.PostedBy.User != nil {
		assert.Equal(t, rigby.Username, got.PostedBy.User.Username)
	}
}

func testDeleteTuitThenNotFound(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	u, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)
	tu, err := c.CreateTuit(ctx, u.ID, client.CreateTuitRequest{Tuit: rigbyTuit})
	require.NoError(t, err)

	res, err := c.DeleteTuit(ctx, tu.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.DeletedCount, int64(1))

	_, err = c.GetTuit(ctx, tu.ID)
	assert.True(t, errors.Is(err, client.ErrNotFound), "expected not found, got %v", err)
}

// testFindAllTuits creates the stooges and their tuits concurrently, then
// checks every new tuit is listed exactly once.
func testFindAllTuits(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, stooges...)

	users := make([]*client.User, len(stooges))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range stooges {
		g.Go(func() error {
			u, err := c.CreateUser(gctx, client.CreateUserRequest{
				Username: name,
				Password: name + "123",
				Email:    name + "@stooges.com",
			})
			users[i] = u
			return err
		})
	}
	require.NoError(t, g.Wait())

	created := make([]*client.Tuit, len(users))
	g, gctx = errgroup.WithContext(ctx)
	for i, u := range users {
		g.Go(func() error {
			tu, err := c.CreateTuit(gctx, u.ID, client.CreateTuitRequest{Tuit: u.Username + "'s tuit!"})
			created[i] = tu
			return err
		})
	}
	require.NoError(t, g.Wait())

	all, err := c.ListTuits(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), len(created))

	seen := map[string]int{}
	for _, tu := range all {
		seen[tu.ID]++
	}
	for _, want := range created {
		assert.Equal(t, 1, seen[want.ID], "tuit %s listed %d times", want.ID, seen[want.ID])
	}
	for _, tu := range all {
		for _, want := range created {
			if tu.ID == want.ID {
				assert.Equal(t, want.Tuit, tu.Tuit)
				assert.Equal(t, want.PostedBy.ID, tu.PostedBy.ID)
			}
		}
	}
}

func testDeleteByUsername(t *testing.T, c *client.Client) {
	ctx := ctxFor(t)
	clean(t, c, rigby.Username)

	_, err := c.CreateUser(ctx, rigby)
	require.NoError(t, err)

	res, err := c.DeleteUsersByUsername(ctx, rigby.Username)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.DeletedCount, int64(1))

	all, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, usernamesOf(all), rigby.Username)
}

func usernamesOf(us []client.User) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.Username)
	}
	return out
}
