package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				app.Cfg.Server.Port = port
			}
			app.NewServer()
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server.port")
	return cmd
}
