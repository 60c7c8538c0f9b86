package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

func newHistoryCmd(rt *runtime) *cobra.Command {
	searches := rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
		out := cmd.OutOrStdout()
		printHeading(out, "Recent searches")
		recent := app.Collections.RecentSearches()
		if len(recent) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No recent searches."))
			return nil
		}
		for i, q := range recent {
			fmt.Fprintf(out, "%2d. %s\n", i+1, q)
		}
		return nil
	})

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches and recently viewed books",
		Args:  cobra.NoArgs,
		RunE:  searches,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "searches",
			Short: "Show recent searches, most recent first",
			Args:  cobra.NoArgs,
			RunE:  searches,
		},
		&cobra.Command{
			Use:   "viewed",
			Short: "Show recently viewed books, most recent first",
			Args:  cobra.NoArgs,
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				printHeading(cmd.OutOrStdout(), "Recently viewed")
				printBooks(cmd.OutOrStdout(), app.Collections.RecentlyViewed(), app.Collections.IsFavorited)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear recent searches",
			Args:  cobra.NoArgs,
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				app.Collections.ClearRecentSearches()
				fmt.Fprintln(cmd.OutOrStdout(), "Recent searches cleared.")
				return nil
			}),
		},
	)

	return cmd
}
