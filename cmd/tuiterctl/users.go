package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kachalmers/tuiter/client"
)

func newUsersCmd(opts *cliOptions) *cobra.Command {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// create
	var req client.CreateUserRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.CreateUser(ctx, req)
				if err != nil {
					return err
				}
				log.Debug().Str("user_id", u.ID).Str("username", u.Username).Msg("user created")
				return printJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	createCmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username (required)")
	createCmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (required)")
	createCmd.Flags().StringVarP(&req.Email, "email", "e", "", "Email")
	createCmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	createCmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(createCmd)

	// list
	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				us, err := c.ListUsers(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), us)
			})
		},
	})

	// get
	usersCmd.AddCommand(&cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.GetUser(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), u)
			})
		},
	})

	// delete
	usersCmd.AddCommand(&cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.DeleteUser(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	})

	// delete-by-username
	usersCmd.AddCommand(&cobra.Command{
		Use:   "delete-by-username USERNAME",
		Short: "Delete every user with the given username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.DeleteUsersByUsername(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	})

	// login
	var creds client.Credentials
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Look up a user by credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *client.Client) error {
				u, err := c.Login(ctx, creds)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), u)
			})
		},
	}
	loginCmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password (required)")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(loginCmd)

	return usersCmd
}
