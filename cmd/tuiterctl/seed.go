package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kachalmers/tuiter/client"
)

type seedResult struct {
	Users []*client.User `json:"users"`
	Tuits []*client.Tuit `json:"tuits"`
}

func newSeedCmd(opts *cliOptions) *cobra.Command {
	var (
		usernames   []string
		perUser     int
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the named users and post tuits for each, concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if perUser < 0 {
				return fmt.Errorf("--tuits-per-user must be >= 0")
			}
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := seed(ctx, c, usernames, perUser, concurrency)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringSliceVar(&usernames, "users", []string{"larry", "curley", "moe"}, "Usernames to (re)create")
	cmd.Flags().IntVar(&perUser, "tuits-per-user", 1, "Tuits to post per user")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Maximum in-flight requests")
	return cmd
}

// seed removes any existing accounts with the given usernames, recreates them
// and posts perUser tuits for each. Users keep input order in the result.
func seed(ctx context.Context, c *client.Client, usernames []string, perUser, concurrency int) (*seedResult, error) {
	users := make([]*client.User, len(usernames))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, name := range usernames {
		g.Go(func() error {
			if _, err := c.DeleteUsersByUsername(gctx, name); err != nil {
				return fmt.Errorf("clear %s: %w", name, err)
			}
			u, err := c.CreateUser(gctx, client.CreateUserRequest{
				Username: name,
				Password: name + "123",
				Email:    name + "@stooges.com",
			})
			if err != nil {
				return fmt.Errorf("create %s: %w", name, err)
			}
			users[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		tuits = make([]*client.Tuit, 0, len(users)*perUser)
	)
	g, gctx = errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, u := range users {
		for n := 1; n <= perUser; n++ {
			g.Go(func() error {
				text := fmt.Sprintf("%s's tuit!", u.Username)
				if perUser > 1 {
					text = fmt.Sprintf("%s's tuit #%d!", u.Username, n)
				}
				t, err := c.CreateTuit(gctx, u.ID, client.CreateTuitRequest{Tuit: text})
				if err != nil {
					return fmt.Errorf("tuit for %s: %w", u.Username, err)
				}
				mu.Lock()
				tuits = append(tuits, t)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("users", len(users)).Int("tuits", len(tuits)).Msg("seed completed")
	return &seedResult{Users: users, Tuits: tuits}, nil
}
