package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/service/search"
)

// SearchUseCase exposes the web search on its own
type SearchUseCase struct {
	search search.Service
}

// NewSearchUseCase creates a new SearchUseCase instance
func NewSearchUseCase(svc search.Service) *SearchUseCase {
	return &SearchUseCase{search: svc}
}

// Search runs one web search. Provider problems are reported in the result,
// only a blank query is an error.
func (x *SearchUseCase) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, goerr.Wrap(model.ErrValidation, "query is required", goerr.V(QueryKey, query))
	}

	if x.search == nil {
		return &model.SearchResult{
			Success: false,
			Query:   q,
			Text:    "Web search is not configured",
		}, nil
	}

	return x.search.Search(ctx, q), nil
}
