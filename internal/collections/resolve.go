package collections

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// BookFetcher looks up a single catalog item. ok is false when the item is
// missing or could not be fetched; both are treated the same.
type BookFetcher interface {
	FetchByID(ctx context.Context, id string) (item *entities.CatalogItem, ok bool)
}

// ResolveBooks fetches the catalog items behind ids with at most concurrency
// requests in flight. The result keeps the order of ids and silently drops
// items that could not be fetched.
func ResolveBooks(ctx context.Context, fetcher BookFetcher, ids []string, concurrency int) []entities.CatalogItem {
	if concurrency < 1 {
		concurrency = 1
	}

	found := make([]*entities.CatalogItem, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			if item, ok := fetcher.FetchByID(ctx, id); ok {
				found[i] = item
			}
			return nil
		})
	}
	_ = g.Wait()

	items := make([]entities.CatalogItem, 0, len(ids))
	for _, item := range found {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

// FilterBooks keeps the items whose title or authors contain q.
func FilterBooks(items []entities.CatalogItem, q string) []entities.CatalogItem {
	filtered := make([]entities.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.MatchesText(q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FavoriteIDs returns the IDs of favorites in the order they were added.
func FavoriteIDs(favorites []entities.Favorite) []string {
	ids := make([]string, len(favorites))
	for i, f := range favorites {
		ids[i] = f.ID
	}
	return ids
}
