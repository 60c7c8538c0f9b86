package search

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// DefaultBrowseLimit is the size of the featured rows (trending, genre tabs).
const DefaultBrowseLimit = 8

// Browser fetches single, fixed-size pages for the home view. Unlike Engine it
// keeps no session: every call is independent.
type Browser struct {
	searcher catalog.Searcher
	limit    int
}

func NewBrowser(searcher catalog.Searcher, limit int) *Browser {
	if limit <= 0 {
		limit = DefaultBrowseLimit
	}
	return &Browser{searcher: searcher, limit: limit}
}

func (b *Browser) Trending(ctx context.Context) ([]entities.CatalogItem, error) {
	return b.fetch(ctx, catalog.TrendingQuery(b.limit), "trending books")
}

func (b *Browser) Genre(ctx context.Context, genre string) ([]entities.CatalogItem, error) {
	return b.fetch(ctx, catalog.GenreQuery(genre, b.limit), genre+" books")
}

func (b *Browser) Author(ctx context.Context, author string) ([]entities.CatalogItem, error) {
	return b.fetch(ctx, catalog.AuthorBooksQuery(author, b.limit), "books by "+author)
}

func (b *Browser) fetch(ctx context.Context, q catalog.Query, what string) ([]entities.CatalogItem, error) {
	page, err := b.searcher.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return page.Items, nil
}
