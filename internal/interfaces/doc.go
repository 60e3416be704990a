// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - search.CorpusStore: corpus loading + relational fallback search (internal/search/engine.go)
//   - progress.RecordStore: progress record persistence (internal/progress/service.go)
//   - progress.HadithReader: hadith existence checks (internal/progress/service.go)
//
// ## Search Backend Interfaces
//
//   - search.RemoteBackend: a dedicated external search engine (internal/search/engine.go).
//     Implementations must return search.ErrBackendUnavailable when unreachable so the
//     engine can fall back instead of failing the request.
//
// # Adding a New Search Backend
//
// To plug in a different search engine:
//
//  1. Implement search.RemoteBackend in its own package
//
//     type Client struct {
//     httpClient *http.Client
//     }
//
//     func (c *Client) Search(ctx context.Context, q search.Query) (*search.Result, error)
//     func (c *Client) IndexCorpus(ctx context.Context, corpus []entities.Hadith) error
//
//     var _ search.RemoteBackend = (*Client)(nil)
//
//  2. Attach it in entrypoint.go via search.WithRemoteBackend
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
