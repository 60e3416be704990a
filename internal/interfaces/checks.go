package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/alhifz/hifz/internal/database/hadiths"
	progressrepo "github.com/alhifz/hifz/internal/database/progress"
	"github.com/alhifz/hifz/internal/meili"
	"github.com/alhifz/hifz/internal/progress"
	"github.com/alhifz/hifz/internal/search"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// CorpusStore implementations
var _ search.CorpusStore = (*hadiths.Repository)(nil)

// HadithReader implementations
var _ progress.HadithReader = (*hadiths.Repository)(nil)

// RecordStore implementations
var _ progress.RecordStore = (*progressrepo.Repository)(nil)

// =============================================================================
// Search Backends
// =============================================================================

// RemoteBackend implementations
var _ search.RemoteBackend = (*meili.Client)(nil)
