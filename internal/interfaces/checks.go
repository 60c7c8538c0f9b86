package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/collections"
	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/search"
)

// =============================================================================
// Storage
// =============================================================================

var _ collections.Storage = (*database.Database)(nil)
var _ collections.Storage = (*collections.MemoryStorage)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ catalog.Client = (*catalog.GoogleBooksClient)(nil)
var _ collections.BookFetcher = (*catalog.GoogleBooksClient)(nil)

// =============================================================================
// Search
// =============================================================================

var _ search.RecentSearchRecorder = (*collections.Manager)(nil)
