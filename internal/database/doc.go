// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── hadiths/         # Read access to the hadith corpus
//	└── progress/        # Progress record persistence
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./hifz.db")
//
//	// Create domain-specific repositories
//	hadithRepo := hadiths.NewRepository(db.DB)
//	progressRepo := progress.NewRepository(db.DB)
//
//	// Use repositories
//	hadith, err := hadithRepo.GetByID(123)
//	records, err := progressRepo.ListByChild(childID, "")
//
// # Interface Implementations
//
// Each sub-package implements the consumer-defined interfaces of the
// core packages:
//
//   - hadiths.Repository: implements search.CorpusStore and progress.HadithReader
//   - progress.Repository: implements progress.RecordStore
//
// The compile-time checks live in internal/interfaces.
//
// # Adding a New Domain
//
// To add a new domain (e.g., children):
//
//  1. Create a new sub-package: internal/database/children/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add a compile-time interface check in internal/interfaces
package database
