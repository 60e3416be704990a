package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./hifz.db"

	// DefaultSearchIndex is the Meilisearch index uid holding the corpus
	DefaultSearchIndex = "hadiths"

	// DefaultPageSize is the search page size when the caller passes none
	DefaultPageSize = 20

	// MaxPageSize caps the search page size; larger requests are clamped
	MaxPageSize = 100
)
