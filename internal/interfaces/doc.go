// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage
//
//   - collections.Storage: raw byte slots keyed by collection name
//     (internal/collections/storage.go). Implemented by database.Database
//     (SQLite via gorm) and collections.MemoryStorage.
//
// ## External Services
//
//   - catalog.Searcher: one page of volumes for a query (internal/catalog/catalog.go)
//   - catalog.Fetcher / collections.BookFetcher: a single volume by ID
//   - catalog.Client: both of the above. Implemented by catalog.GoogleBooksClient.
//
// ## Search
//
//   - search.RecentSearchRecorder: receives queries that start a new search.
//     Implemented by collections.Manager.
//
// # Adding a New Catalog Backend
//
//  1. Implement catalog.Client in internal/catalog/
//
//     type OpenLibraryClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *OpenLibraryClient) Search(ctx context.Context, q Query) (*Page, error)
//     func (c *OpenLibraryClient) FetchByID(ctx context.Context, id string) (*entities.CatalogItem, bool)
//
//  2. Add a compile-time check to checks.go
//
//  3. Wire it in entrypoint.Bootstrap
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
