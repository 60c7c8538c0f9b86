// Package catalog talks to the remote book catalog.
//
// The catalog understands a small query language that is passed through
// verbatim: plain text, or the prefixed forms "subject:<genre>" and
// "inauthor:<author>".
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// ErrFetchFailed wraps every transport, status, and decoding failure. Callers
// are not expected to tell them apart.
var ErrFetchFailed = errors.New("failed to fetch books")

type OrderBy string

const (
	OrderRelevance OrderBy = "relevance"
	OrderNewest    OrderBy = "newest"
)

// ParseOrderBy maps a config or flag value to an OrderBy, defaulting to relevance.
func ParseOrderBy(s string) OrderBy {
	if OrderBy(strings.ToLower(strings.TrimSpace(s))) == OrderNewest {
		return OrderNewest
	}
	return OrderRelevance
}

// DefaultPageSize is the number of results requested per page.
const DefaultPageSize = 20

// Query describes one page request.
type Query struct {
	Q       string
	Offset  int
	Limit   int
	OrderBy OrderBy
}

// Page is one page of search results.
type Page struct {
	TotalItems int
	Items      []entities.CatalogItem
}

// Searcher runs paged searches against the catalog.
type Searcher interface {
	Search(ctx context.Context, q Query) (*Page, error)
}

// Fetcher looks up single volumes. ok is false on not-found and on any failure.
type Fetcher interface {
	FetchByID(ctx context.Context, id string) (item *entities.CatalogItem, ok bool)
}

type Client interface {
	Searcher
	Fetcher
}

// SubjectQuery restricts a search to a genre.
func SubjectQuery(genre string) string {
	return "subject:" + strings.TrimSpace(genre)
}

// AuthorQuery restricts a search to an author.
func AuthorQuery(author string) string {
	return "inauthor:" + strings.TrimSpace(author)
}

// TrendingQuery approximates "trending" since the catalog has no such feed:
// the newest fiction titles.
func TrendingQuery(limit int) Query {
	return Query{Q: SubjectQuery("fiction"), Limit: limit, OrderBy: OrderNewest}
}

// GenreQuery returns the first page of a genre, by relevance.
func GenreQuery(genre string, limit int) Query {
	return Query{Q: SubjectQuery(genre), Limit: limit, OrderBy: OrderRelevance}
}

// AuthorBooksQuery returns the first page of an author's books, by relevance.
func AuthorBooksQuery(author string, limit int) Query {
	return Query{Q: AuthorQuery(author), Limit: limit, OrderBy: OrderRelevance}
}
