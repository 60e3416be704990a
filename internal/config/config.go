package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Search
		Meilisearch
		Reindex
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Search struct {
		DefaultPageSize int
		MaxPageSize     int
	}

	Meilisearch struct {
		Enabled bool
		URL     string
		APIKey  string
		Index   string
		Timeout time.Duration
	}

	Reindex struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Search defaults
	v.SetDefault("search_default_page_size", DefaultPageSize)
	v.SetDefault("search_max_page_size", MaxPageSize)

	// Meilisearch defaults
	v.SetDefault("meilisearch_enabled", false)
	v.SetDefault("meilisearch_url", "http://localhost:7700")
	v.SetDefault("meilisearch_api_key", "")
	v.SetDefault("meilisearch_index", DefaultSearchIndex)
	v.SetDefault("meilisearch_timeout", "5s")

	// Reindex scheduler defaults
	v.SetDefault("reindex_enabled", false)
	v.SetDefault("reindex_schedule", "0 3 * * *") // Daily at 03:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Search: Search{
			DefaultPageSize: v.GetInt("SEARCH_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("SEARCH_MAX_PAGE_SIZE"),
		},
		Meilisearch: Meilisearch{
			Enabled: v.GetBool("MEILISEARCH_ENABLED"),
			URL:     v.GetString("MEILISEARCH_URL"),
			APIKey:  v.GetString("MEILISEARCH_API_KEY"),
			Index:   v.GetString("MEILISEARCH_INDEX"),
			Timeout: v.GetDuration("MEILISEARCH_TIMEOUT"),
		},
		Reindex: Reindex{
			Enabled:  v.GetBool("REINDEX_ENABLED"),
			Schedule: v.GetString("REINDEX_SCHEDULE"),
		},
	}
}
