package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kachalmers/tuiter/client"
)

func newTuitsCmd(opts *cliOptions) *cobra.Command {
	tuitsCmd := &cobra.Command{Use: "tuits", Short: "Tuit operations"}

	var authorID, text string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Post a tuit on behalf of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				t, err := c.CreateTuit(ctx, authorID, client.CreateTuitRequest{Tuit: text})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), t)
			})
		},
	}
	createCmd.Flags().StringVarP(&authorID, "user-id", "u", "", "Author user ID (required)")
	createCmd.Flags().StringVarP(&text, "text", "t", "", "Tuit text (required)")
	_ = createCmd.MarkFlagRequired("user-id")
	_ = createCmd.MarkFlagRequired("text")
	tuitsCmd.AddCommand(createCmd)

	tuitsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tuits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				ts, err := c.ListTuits(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ts)
			})
		},
	})

	tuitsCmd.AddCommand(&cobra.Command{
		Use:   "get TUIT_ID",
		Short: "Get tuit by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				t, err := c.GetTuit(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), t)
			})
		},
	})

	tuitsCmd.AddCommand(&cobra.Command{
		Use:   "delete TUIT_ID",
		Short: "Delete tuit by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.DeleteTuit(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	})

	return tuitsCmd
}
