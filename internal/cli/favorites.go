package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/collections"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

func newFavoritesCmd(rt *runtime) *cobra.Command {
	var filter string

	list := rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
		favorites := app.Collections.Favorites()
		out := cmd.OutOrStdout()
		printHeading(out, fmt.Sprintf("Favorites (%d)", len(favorites)))
		if len(favorites) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No favorites yet. Add one with 'favorites add <book-id>'."))
			return nil
		}

		items := collections.ResolveBooks(cmd.Context(), app.Catalog, collections.FavoriteIDs(favorites), app.Config.Resolve.Concurrency)
		items = collections.FilterBooks(items, filter)

		added := make(map[string]string, len(favorites))
		for _, f := range favorites {
			added[f.ID] = ago(f.DateAdded)
		}
		if len(items) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No books found."))
			return nil
		}
		for _, item := range items {
			fmt.Fprintf(out, "%s  %s\n", bookLine(item, true), dimStyle.Render("added "+added[item.ID]))
		}
		return nil
	})

	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite books",
		Args:    cobra.NoArgs,
		RunE:    list,
	}
	cmd.PersistentFlags().StringVar(&filter, "filter", "", "only show books whose title or author contains this text")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite books",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "add <book-id>",
			Short: "Add a book to favorites",
			Args:  cobra.ExactArgs(1),
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				item, ok := app.Catalog.FetchByID(cmd.Context(), args[0])
				if !ok {
					return fmt.Errorf("book not found: %s", args[0])
				}
				if app.Collections.IsFavorited(item.ID) {
					fmt.Fprintf(cmd.OutOrStdout(), "Already a favorite: %s\n", item.Title())
					return nil
				}
				app.Collections.AddFavorite(*item)
				fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", item.Title())
				return nil
			}),
		},
		&cobra.Command{
			Use:     "remove <book-id>",
			Aliases: []string{"rm"},
			Short:   "Remove a book from favorites",
			Args:    cobra.ExactArgs(1),
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				if !app.Collections.IsFavorited(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "Not a favorite: %s\n", args[0])
					return nil
				}
				app.Collections.RemoveFavorite(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Removed from favorites: %s\n", args[0])
				return nil
			}),
		},
	)

	return cmd
}
