package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// client implements Service on the Google Custom Search JSON API
type client struct {
	apiKey   string
	engineID string
	endpoint string
	timeout  time.Duration
	svc      *customsearch.Service
}

// Option is a functional option for client configuration
type Option func(*client)

// WithEngineID sets the programmable search engine ID
func WithEngineID(id string) Option {
	return func(c *client) {
		if id != "" {
			c.engineID = id
		}
	}
}

// WithEndpoint overrides the API base URL
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the timeout of one search call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// New creates a search service. An empty API key is accepted; every search
// then returns an unsuccessful result explaining that the key is missing.
// The API client is built once and shared by every call.
func New(apiKey string, opts ...Option) (Service, error) {
	c := &client{
		apiKey:   apiKey,
		engineID: DefaultEngineID,
		timeout:  15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		return c, nil
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(c.endpoint))
	}
	svc, err := customsearch.NewService(context.Background(), clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create custom search service")
	}
	c.svc = svc
	return c, nil
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

func (c *client) Search(ctx context.Context, query string) *model.SearchResult {
	logger := logging.From(ctx)

	if strings.TrimSpace(query) == "" {
		return &model.SearchResult{Query: query, Text: "Web search error: query is empty"}
	}

	items, err := c.fetch(ctx, query)
	if err != nil {
		logger.Warn("web search failed", "query", query, "error", err)
		return &model.SearchResult{
			Query: query,
			Text:  "Web search error: " + err.Error(),
		}
	}

	if len(items) == 0 {
		logger.Info("web search returned no results", "query", query)
		return &model.SearchResult{Success: true, Query: query, Text: NoResultsText}
	}

	logger.Info("web search completed", "query", query, "hits", len(items))
	return &model.SearchResult{
		Success: true,
		Query:   query,
		Text:    FormatItems(items),
	}
}

func (c *client) fetch(ctx context.Context, query string) ([]model.SearchItem, error) {
	if c.svc == nil {
		return nil, goerr.Wrap(model.ErrSearch, "search API key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Cse.List().Cx(c.engineID).Q(query).Num(requestedResults).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, goerr.Wrap(model.ErrSearch, fmt.Sprintf("search API returned status %d", apiErr.Code),
				goerr.V(model.StatusCodeKey, apiErr.Code),
				goerr.V(model.ResponseBodyKey, apiErr.Body))
		}
		return nil, goerr.Wrap(err, "search request failed", goerr.V("query", query))
	}

	items := make([]model.SearchItem, 0, maxResults)
	for _, item := range resp.Items {
		if len(items) == maxResults {
			break
		}
		items = append(items, model.SearchItem{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	return items, nil
}

// FormatItems joins search hits into the text block handed to the LLM
func FormatItems(items []model.SearchItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("Title: %s\nDescription: %s\nSource: %s", item.Title, item.Snippet, item.Link))
	}
	return strings.Join(parts, "\n\n")
}
