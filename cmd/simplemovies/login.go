package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/simplemovies/bootstrap"
	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/session"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and remember the session",
		Long: `Log in as a configured user. The password is read from --password or,
when omitted, from the first line of standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}
			return c.runTask(cmd, func(ctx context.Context, app *bootstrap.App) error {
				sess := di.Resolve[session.Session](app.Registry)
				if err := sess.Login(ctx, args[0], password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.CurrentUser().Username)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prefer stdin)")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTask(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := di.Resolve[session.Session](app.Registry).Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func (c *cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTask(cmd, func(_ context.Context, app *bootstrap.App) error {
				user, err := requireLogin(app)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Username, user.ID)
				return nil
			})
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
