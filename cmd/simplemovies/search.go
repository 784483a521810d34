package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/simplemovies/bootstrap"
	"github.com/kbukum/simplemovies/di"
	"github.com/kbukum/simplemovies/favorites"
	"github.com/kbukum/simplemovies/movies"
)

func (c *cli) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Search the catalogue by title",
		Long: `Search the OMDb catalogue by title. Favorites are marked with a star.

Examples:
  simplemovies search batman
  simplemovies search "the matrix"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return c.runTask(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := requireLogin(app); err != nil {
					return err
				}
				results, err := di.Resolve[movies.Searcher](app.Registry).SearchMovies(ctx, title)
				if err != nil {
					return movies.ToAppError(err)
				}
				if len(results) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", title)
					return nil
				}
				return printMovies(cmd.OutOrStdout(), results, di.Resolve[favorites.Store](app.Registry))
			})
		},
	}
}

// printMovies writes one row per movie. favs may be nil.
func printMovies(w io.Writer, list []movies.Movie, favs favorites.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tIMDB ID\tTITLE\tYEAR\tTYPE")
	for _, m := range list {
		star := ""
		if favs != nil && favs.IsFavorite(m.ImdbID) {
			star = "★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", star, m.ImdbID, m.Title, m.Year, m.Type)
	}
	return tw.Flush()
}
