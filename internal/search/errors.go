package search

import (
	"errors"
	"fmt"
)

// ErrValidation is the common ancestor of request validation failures.
// Handlers match it with errors.Is to map onto a 400 response.
var ErrValidation = errors.New("invalid search request")

// ErrEmptyQuery indicates an empty or whitespace-only query string.
var ErrEmptyQuery = fmt.Errorf("%w: empty query", ErrValidation)

// ErrNegativeOffset indicates a negative pagination offset.
var ErrNegativeOffset = fmt.Errorf("%w: offset must be >= 0", ErrValidation)

// ErrBackendUnavailable is returned by a search backend that cannot
// serve the request. The engine catches it to trigger the fallback;
// it never reaches callers.
var ErrBackendUnavailable = errors.New("search backend unavailable")

// ErrSearchUnavailable is surfaced to callers only when the fallback
// path itself fails.
var ErrSearchUnavailable = errors.New("search unavailable")
