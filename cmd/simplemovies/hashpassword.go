package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/simplemovies/session"
)

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for session.users[].password_hash",
		Long:  `Read a password from the first line of standard input and print its bcrypt hash.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := session.HashPassword(password, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", session.DefaultCost, "bcrypt cost")
	return cmd
}
