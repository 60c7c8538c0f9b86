package entrypoint

import (
	"log"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/collections"
	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/covers"
	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/search"
)

// App holds the long-lived services. It is built once per process and passed
// to every command that needs it.
type App struct {
	Config      *config.Config
	Collections *collections.Manager
	Catalog     catalog.Client
	Search      *search.Engine
	Browser     *search.Browser
	Covers      *covers.Cache // nil when the cache directory is unusable

	db *database.Database
}

type Options struct {
	// Ephemeral keeps collections in memory only.
	Ephemeral bool
	Verbose   bool
}

// Bootstrap wires storage, collections, the catalog client and the search
// engine. If the database cannot be opened the app falls back to in-memory
// collections so browsing still works.
func Bootstrap(cfg *config.Config, opts Options) *App {
	logLevel := logger.Silent
	if opts.Verbose {
		logLevel = logger.Info
	}

	app := &App{Config: cfg}

	var storage collections.Storage
	if opts.Ephemeral {
		storage = collections.NewMemoryStorage()
	} else {
		db, err := database.NewDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			log.Printf("WARNING: cannot open database %s: %v", cfg.Database.Path, err)
			log.Printf("         falling back to in-memory collections (no persistence)")
			storage = collections.NewMemoryStorage()
		} else {
			app.db = db
			storage = db
		}
	}

	app.Collections = collections.NewManager(collections.NewStore(storage))

	client := catalog.NewGoogleBooksClient(catalog.ClientConfig{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
	})
	app.Catalog = client

	app.Search = search.NewEngine(client, app.Collections, search.Options{
		PageSize: cfg.Search.PageSize,
		OrderBy:  catalog.ParseOrderBy(cfg.Search.OrderBy),
	})
	app.Browser = search.NewBrowser(client, cfg.Browse.Limit)

	coverCache, err := covers.NewCache(cfg.Covers.Dir)
	if err != nil {
		log.Printf("WARNING: Failed to initialize cover cache: %v", err)
	} else {
		app.Covers = coverCache
		if opts.Verbose {
			log.Printf("Cover cache initialized at %s", cfg.Covers.Dir)
		}
	}

	return app
}

// Persistent reports whether collections are backed by the database.
func (a *App) Persistent() bool {
	return a.db != nil
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
