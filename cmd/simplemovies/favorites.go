package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/simplemovies/bootstrap"
	"github.com/kbukum/simplemovies/di"
	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/favorites"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/validation"
)

func (c *cli) newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and edit favorites",
	}
	cmd.AddCommand(c.newFavoritesListCmd(), c.newFavoritesAddCmd(), c.newFavoritesRemoveCmd())
	return cmd
}

// withFavorites runs fn for a logged in user.
func (c *cli) withFavorites(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App, favs favorites.Store) error) error {
	return c.runTask(cmd, func(ctx context.Context, app *bootstrap.App) error {
		if _, err := requireLogin(app); err != nil {
			return err
		}
		return fn(ctx, app, di.Resolve[favorites.Store](app.Registry))
	})
}

func (c *cli) newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withFavorites(cmd, func(_ context.Context, _ *bootstrap.App, favs favorites.Store) error {
				items := favs.Items()
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
					return nil
				}
				return printMovies(cmd.OutOrStdout(), items, nil)
			})
		},
	}
}

func (c *cli) newFavoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <imdbID>",
		Short: "Add a search result to favorites",
		Long: `Search for title and add the result with the given IMDb ID.

Example:
  simplemovies favorites add batman tt0372784`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, id := args[0], args[1]
			if !validation.IsIMDbID(id) {
				return apperrors.InvalidInput("imdbID", "must look like tt0000000")
			}
			return c.withFavorites(cmd, func(ctx context.Context, app *bootstrap.App, favs favorites.Store) error {
				results, err := di.Resolve[movies.Searcher](app.Registry).SearchMovies(ctx, title)
				if err != nil {
					return movies.ToAppError(err)
				}
				for _, m := range results {
					if m.ImdbID == id {
						if err := favs.Add(ctx, m); err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", m.Title, m.Year)
						return nil
					}
				}
				return apperrors.NotFound("movie", id)
			})
		},
	}
}

func (c *cli) newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <imdbID>",
		Aliases: []string{"rm"},
		Short:   "Remove a favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withFavorites(cmd, func(ctx context.Context, _ *bootstrap.App, favs favorites.Store) error {
				if err := favs.Remove(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				return nil
			})
		},
	}
}
