package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kachalmers/tuiter/client"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	baseURL string
	timeout time.Duration
	debug   bool
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "tuiterctl",
		Short:         "tuiterctl manages users and tuits on a tuiter backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if opts.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaults, err := client.LoadConfig()
	if err != nil {
		defaults = client.Config{BaseURL: "http://localhost:4000/api", HTTPTimeout: 30 * time.Second}
	}
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", defaults.BaseURL, "API root of the tuiter backend, including /api (env TUITER_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaults.HTTPTimeout, "HTTP timeout per request")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", defaults.Debug, "Log HTTP requests and responses")

	rootCmd.AddCommand(newUsersCmd(opts))
	rootCmd.AddCommand(newTuitsCmd(opts))
	rootCmd.AddCommand(newSeedCmd(opts))

	return rootCmd
}

func (o *cliOptions) newClient() (*client.Client, error) {
	return client.New(o.baseURL,
		client.WithHTTPTimeout(o.timeout),
		client.WithLogger(log.Logger),
		client.WithDebugLogging(o.debug),
	)
}

// withClient runs fn with a fresh client bound to the command's context.
func (o *cliOptions) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	c, err := o.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(cmd.Context(), c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
