package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mrlokans/bookfinder/internal/entities"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	starStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const maxDescriptionLen = 600

// bookLine renders one catalog item as a single list row.
func bookLine(item entities.CatalogItem, favorited bool) string {
	marker := "  "
	if favorited {
		marker = starStyle.Render("★") + " "
	}

	line := marker + titleStyle.Render(item.Title()) + " by " + authorStyle.Render(item.AuthorLine())
	if year := publishedYear(item.VolumeInfo.PublishedDate); year != "" {
		line += " (" + year + ")"
	}
	return line + "  " + dimStyle.Render("["+item.ID+"]")
}

func printBooks(w io.Writer, items []entities.CatalogItem, isFavorited func(string) bool) {
	if len(items) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No books found."))
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, bookLine(item, isFavorited(item.ID)))
	}
}

func printHeading(w io.Writer, text string) {
	fmt.Fprintln(w, headingStyle.Render(text))
}

// printBookDetails renders the full detail view of a single item.
func printBookDetails(w io.Writer, item entities.CatalogItem, favorited bool, lists []entities.ReadingList) {
	info := item.VolumeInfo

	fmt.Fprintln(w, bookLine(item, favorited))
	fmt.Fprintln(w)

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-12s %s\n", label+":", value)
		}
	}
	field("Publisher", info.Publisher)
	field("Published", info.PublishedDate)
	if info.PageCount > 0 {
		field("Pages", humanize.Comma(int64(info.PageCount)))
	}
	field("Categories", strings.Join(info.Categories, ", "))
	if info.RatingsCount > 0 {
		field("Rating", fmt.Sprintf("%.1f (%s ratings)", info.AverageRating, humanize.Comma(int64(info.RatingsCount))))
	}
	field("ISBN", item.ISBN())
	field("Language", info.Language)
	if item.SaleInfo != nil && item.SaleInfo.RetailPrice != nil {
		price := item.SaleInfo.RetailPrice
		field("Price", fmt.Sprintf("%s %s", humanize.CommafWithDigits(price.Amount, 2), price.CurrencyCode))
	}
	field("Preview", info.PreviewLink)

	if len(lists) > 0 {
		names := make([]string, len(lists))
		for i, l := range lists {
			names[i] = l.Name
		}
		field("In lists", strings.Join(names, ", "))
	}

	if info.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, truncate(info.Description, maxDescriptionLen))
	}
}

func publishedYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}
