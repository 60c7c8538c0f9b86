package config

const (
	// DefaultDatabasePath is where the collections are stored
	DefaultDatabasePath = "./bookfinder.db"

	// DefaultCatalogBaseURL is the Google Books API root
	DefaultCatalogBaseURL = "https://www.googleapis.com/books/v1"
)
