package search

import (
	"context"

	"github.com/secmon-lab/smartcomment/pkg/domain/model"
)

// Service runs best-effort web searches. It never returns an error: failures
// are reported through SearchResult.Success and SearchResult.Text.
type Service interface {
	Search(ctx context.Context, query string) *model.SearchResult
	// Configured reports whether the provider credentials are present
	Configured() bool
}

const (
	// DefaultEngineID is the programmable search engine used when none is configured
	DefaultEngineID = "b1817dc74fe314e2f"

	// NoResultsText is returned as a successful result when the provider has no hits
	NoResultsText = "No specific results were found in the web search."

	requestedResults = 5
	maxResults       = 3
)
