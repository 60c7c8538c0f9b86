package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

func newShowCmd(rt *runtime) *cobra.Command {
	var withCover, refreshCover bool

	cmd := &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show the details of a book",
		Long:  "Show the details of a book and add it to the recently viewed history.",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			item, ok := app.Catalog.FetchByID(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("book not found: %s", args[0])
			}

			app.Collections.AddRecentlyViewed(*item)

			out := cmd.OutOrStdout()
			printBookDetails(out, *item, app.Collections.IsFavorited(item.ID), app.Collections.ListsContaining(item.ID))

			if withCover {
				if app.Covers == nil {
					return fmt.Errorf("cover cache is not available")
				}
				if refreshCover {
					if err := app.Covers.InvalidateCover(item.ID); err != nil {
						return fmt.Errorf("invalidate cover: %w", err)
					}
				}
				path, err := app.Covers.GetCover(cmd.Context(), *item)
				if err != nil {
					return fmt.Errorf("fetch cover: %w", err)
				}
				fmt.Fprintln(out)
				if path == "" {
					fmt.Fprintln(out, dimStyle.Render("No cover image available."))
				} else {
					fmt.Fprintf(out, "Cover: %s\n", path)
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&withCover, "cover", false, "download the cover image into the local cache")

	cmd.Flags().BoolVar(&refreshCover, "refresh", false, "with --cover, download the image again even if cached")

	return cmd
}
