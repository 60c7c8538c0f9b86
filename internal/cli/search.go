package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
	"github.com/mrlokans/bookfinder/internal/search"
)

func newSearchCmd(rt *runtime) *cobra.Command {
	var (
		pages int
		order string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long:  "Search the catalog by title, author or keyword. Use --pages to load more than one page of results.",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("search query is empty")
			}
			if pages < 1 {
				pages = 1
			}

			engine := app.Search
			if cmd.Flags().Changed("order") {
				engine = search.NewEngine(app.Catalog, app.Collections, search.Options{
					PageSize: app.Config.Search.PageSize,
					OrderBy:  catalog.ParseOrderBy(order),
				})
			}

			if rt.verbose {
				engine.SetObserver(func(s search.Session) {
					log.Printf("search %q: %s, %d of %d loaded", s.Query, s.State, len(s.Results), s.TotalItems)
				})
			}

			// A failed page ends the run; retrying is left to the user.
			session := engine.Search(cmd.Context(), query, true)
			for loaded := 1; loaded < pages && session.HasMore && session.State != search.StateFailed; loaded++ {
				session = engine.LoadMore(cmd.Context())
			}

			failed := session.State == search.StateFailed
			if failed && len(session.Results) == 0 {
				return errors.New(session.Err)
			}

			out := cmd.OutOrStdout()
			printHeading(out, fmt.Sprintf("Results for %q", session.Query))
			printBooks(out, session.Results, app.Collections.IsFavorited)
			fmt.Fprintln(out, dimStyle.Render(resultsSummary(session)))
			if failed {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(fmt.Sprintf("Could not load more results: %s", session.Err)))
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of result pages to load")
	cmd.Flags().StringVar(&order, "order", string(catalog.OrderRelevance), "result order: relevance or newest")

	return cmd
}

func resultsSummary(s search.Session) string {
	summary := fmt.Sprintf("Showing %d of %d results", len(s.Results), s.TotalItems)
	if s.HasMore {
		summary += " (use --pages to load more)"
	}
	return summary
}
