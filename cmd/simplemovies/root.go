package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/simplemovies/bootstrap"
	"github.com/kbukum/simplemovies/config"
	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/session"
	"github.com/kbukum/simplemovies/version"
)

// cli holds the global flags shared by every command.
type cli struct {
	configFile string
	envFile    string
	logLevel   string

	// appOpts are passed to bootstrap.NewApp. Tests use them to replace the
	// OMDb client and logger.
	appOpts []bootstrap.Option
}

func newRootCmd(opts ...bootstrap.Option) *cobra.Command {
	c := &cli{appOpts: opts}

	root := &cobra.Command{
		Use:           "simplemovies",
		Short:         "Search movies and keep a list of favorites",
		Long:          `simplemovies searches the OMDb catalogue by title, keeps a list of favorite titles and serves both over an HTTP API.`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "",
		"config file (default: ./config.yml or ~/.config/simplemovies/config.yml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file loaded before the environment")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		c.newServeCmd(),
		c.newSearchCmd(),
		c.newFavoritesCmd(),
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		newHashPasswordCmd(),
		newVersionCmd(),
	)
	return root
}

// loadApp reads the configuration and wires the application.
func (c *cli) loadApp(ctx context.Context) (*bootstrap.App, error) {
	var loadOpts []config.LoaderOption
	if c.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(c.configFile))
	}
	if c.envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFile(c.envFile))
	}

	cfg, err := bootstrap.Load(loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	return bootstrap.NewApp(ctx, cfg, c.appOpts...)
}

// runTask wires the application and runs task inside its lifecycle.
func (c *cli) runTask(cmd *cobra.Command, task func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := c.loadApp(cmd.Context())
	if err != nil {
		return err
	}
	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		return task(ctx, app)
	})
}

var errNotLoggedIn = errors.New("not logged in, run `simplemovies login <username>` first")

// requireLogin fails unless a session was restored or created.
func requireLogin(app *bootstrap.App) (*session.LoggedUser, error) {
	user := di.Resolve[session.Session](app.Registry).CurrentUser()
	if user == nil {
		return nil, errNotLoggedIn
	}
	return user, nil
}
