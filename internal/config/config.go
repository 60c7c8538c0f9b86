package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Catalog
		Search
		Browse
		Covers
		Resolve
	}

	Database struct {
		Path string
	}
	Catalog struct {
		BaseURL   string
		APIKey    string        // Optional; raises the anonymous quota
		Timeout   time.Duration // Per-request timeout
		RateLimit time.Duration // Minimum gap between requests
	}
	Search struct {
		PageSize int
		OrderBy  string // "relevance" or "newest"
	}
	Browse struct {
		Limit int // Size of trending/genre/author rows
	}
	Covers struct {
		Dir string // Defaults to a "covers" directory next to the database
	}
	Resolve struct {
		Concurrency int // Parallel lookups when loading favorites and lists
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_api_key", "")
	v.SetDefault("catalog_timeout", "10s")
	v.SetDefault("catalog_rate_limit", "200ms")
	v.SetDefault("search_page_size", 20)
	v.SetDefault("search_order_by", "relevance")
	v.SetDefault("browse_limit", 8)
	v.SetDefault("covers_dir", "")
	v.SetDefault("resolve_concurrency", 4)

	cfg := &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			BaseURL:   v.GetString("CATALOG_BASE_URL"),
			APIKey:    v.GetString("CATALOG_API_KEY"),
			Timeout:   v.GetDuration("CATALOG_TIMEOUT"),
			RateLimit: v.GetDuration("CATALOG_RATE_LIMIT"),
		},
		Search: Search{
			PageSize: v.GetInt("SEARCH_PAGE_SIZE"),
			OrderBy:  v.GetString("SEARCH_ORDER_BY"),
		},
		Browse: Browse{
			Limit: v.GetInt("BROWSE_LIMIT"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		Resolve: Resolve{
			Concurrency: v.GetInt("RESOLVE_CONCURRENCY"),
		},
	}

	if cfg.Covers.Dir == "" {
		cfg.Covers.Dir = filepath.Join(filepath.Dir(cfg.Database.Path), "covers")
	}

	return cfg
}
