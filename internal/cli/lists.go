package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/bookfinder/internal/collections"
	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

func newListsCmd(rt *runtime) *cobra.Command {
	var filter string

	all := rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
		lists := app.Collections.ReadingLists()
		out := cmd.OutOrStdout()
		printHeading(out, fmt.Sprintf("Reading lists (%d)", len(lists)))
		if len(lists) == 0 {
			fmt.Fprintln(out, dimStyle.Render("No reading lists yet. Create one with 'lists create <name>'."))
			return nil
		}
		for _, l := range lists {
			fmt.Fprintf(out, "%s  %s  %s\n",
				titleStyle.Render(l.Name),
				bookCount(len(l.Books)),
				dimStyle.Render(fmt.Sprintf("updated %s  [%s]", ago(l.LastModified), l.ID)),
			)
		}
		return nil
	})

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage reading lists",
		Args:  cobra.NoArgs,
		RunE:  all,
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a reading list",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return errors.New("list name must not be empty")
			}

			bookID, _ := cmd.Flags().GetString("add")
			var item *entities.CatalogItem
			if bookID != "" {
				found, ok := app.Catalog.FetchByID(cmd.Context(), bookID)
				if !ok {
					return fmt.Errorf("book not found: %s", bookID)
				}
				item = found
			}

			id := app.Collections.CreateReadingList(name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created list %q [%s]\n", name, id)

			if item != nil {
				app.Collections.AddBookToList(item.ID, id)
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %q\n", item.Title(), name)
			}
			return nil
		}),
	}
	create.Flags().String("add", "", "book ID to add to the new list")

	show := &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show the books in a reading list",
		Args:  cobra.ExactArgs(1),
		RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
			list, err := findList(app.Collections, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeading(out, list.Name)
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s, created %s, updated %s",
				bookCount(len(list.Books)), ago(list.DateCreated), ago(list.LastModified))))

			items := collections.ResolveBooks(cmd.Context(), app.Catalog, list.Books, app.Config.Resolve.Concurrency)
			printBooks(out, collections.FilterBooks(items, filter), app.Collections.IsFavorited)
			return nil
		}),
	}
	show.Flags().StringVar(&filter, "filter", "", "only show books whose title or author contains this text")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List reading lists",
			Args:  cobra.NoArgs,
			RunE:  all,
		},
		create,
		&cobra.Command{
			Use:     "delete <list-id>",
			Aliases: []string{"rm"},
			Short:   "Delete a reading list",
			Args:    cobra.ExactArgs(1),
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				list, err := findList(app.Collections, args[0])
				if err != nil {
					return err
				}
				app.Collections.DeleteReadingList(list.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %q\n", list.Name)
				return nil
			}),
		},
		show,
		&cobra.Command{
			Use:   "add <list-id> <book-id>",
			Short: "Add a book to a reading list",
			Args:  cobra.ExactArgs(2),
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				list, err := findList(app.Collections, args[0])
				if err != nil {
					return err
				}
				if list.Contains(args[1]) {
					fmt.Fprintf(cmd.OutOrStdout(), "Already in %q: %s\n", list.Name, args[1])
					return nil
				}
				item, ok := app.Catalog.FetchByID(cmd.Context(), args[1])
				if !ok {
					return fmt.Errorf("book not found: %s", args[1])
				}
				app.Collections.AddBookToList(item.ID, list.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %q\n", item.Title(), list.Name)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <list-id> <book-id>",
			Short: "Remove a book from a reading list",
			Args:  cobra.ExactArgs(2),
			RunE: rt.withApp(func(cmd *cobra.Command, args []string, app *entrypoint.App) error {
				list, err := findList(app.Collections, args[0])
				if err != nil {
					return err
				}
				inList := list.Contains(args[1])
				app.Collections.RemoveBookFromList(args[1], list.ID)
				if !inList {
					fmt.Fprintf(cmd.OutOrStdout(), "Not in %q: %s\n", list.Name, args[1])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %q\n", args[1], list.Name)
				return nil
			}),
		},
	)

	return cmd
}

// findList looks a list up by ID, then by case-insensitive name.
func findList(m *collections.Manager, ref string) (entities.ReadingList, error) {
	if list, ok := m.ReadingList(ref); ok {
		return list, nil
	}
	for _, list := range m.ReadingLists() {
		if strings.EqualFold(list.Name, ref) {
			return list, nil
		}
	}
	return entities.ReadingList{}, fmt.Errorf("reading list not found: %s", ref)
}

func bookCount(n int) string {
	if n == 1 {
		return "1 book"
	}
	return fmt.Sprintf("%d books", n)
}
