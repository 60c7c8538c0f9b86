package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

func newTrendingCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show the newest fiction",
		Args:  cobra.NoArgs,
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			items, err := app.Browser.Trending(cmd.Context())
			if err != nil {
				return err
			}
			printHeading(cmd.OutOrStdout(), "Trending now")
			printBooks(cmd.OutOrStdout(), items, app.Collections.IsFavorited)
			return nil
		}),
	}
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genres that can be browsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printHeading(out, "Genres")
			for _, g := range entities.Genres {
				line := "  " + string(g)
				if entities.IsFeaturedGenre(g) {
					line = starStyle.Render("★") + " " + string(g)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newGenreCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "genre <name>",
		Short: "Browse books in a genre",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			genre := strings.Join(args, " ")
			items, err := app.Browser.Genre(cmd.Context(), genre)
			if err != nil {
				return err
			}
			printHeading(cmd.OutOrStdout(), genre)
			printBooks(cmd.OutOrStdout(), items, app.Collections.IsFavorited)
			return nil
		}),
	}
}

func newAuthorCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "author <name>",
		Short: "Browse books by an author",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			author := strings.Join(args, " ")
			items, err := app.Browser.Author(cmd.Context(), author)
			if err != nil {
				return err
			}
			printHeading(cmd.OutOrStdout(), "Books by "+author)
			printBooks(cmd.OutOrStdout(), items, app.Collections.IsFavorited)
			return nil
		}),
	}
}
