package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/smartcomment/pkg/service/search"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
)

const (
	DefaultCountry  = "Mexico"
	DefaultKeywords = "company industry sector size revenue employees headquarters subsidiaries"
)

// Service produces a short company background for new clients
type Service interface {
	// Generate never fails; a generic sentence is returned when the brief
	// cannot be produced.
	Generate(ctx context.Context, clientName string) string
}

type client struct {
	llmClient gollem.LLMClient
	searcher  search.Service
	country   string
	keywords  string
	timeout   time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithCountry sets the market the brief is written for
func WithCountry(country string) Option {
	return func(c *client) {
		if country != "" {
			c.country = country
		}
	}
}

// WithKeywords sets the business keywords appended to the search query
func WithKeywords(keywords string) Option {
	return func(c *client) {
		if keywords != "" {
			c.keywords = keywords
		}
	}
}

// WithTimeout sets the timeout of the LLM call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// New creates a brief service. llmClient should be configured with a low
// temperature so briefs keep the same shape.
func New(llmClient gollem.LLMClient, searcher search.Service, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if searcher == nil {
		return nil, goerr.New("search service is required")
	}

	c := &client{
		llmClient: llmClient,
		searcher:  searcher,
		country:   DefaultCountry,
		keywords:  DefaultKeywords,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *client) Generate(ctx context.Context, clientName string) string {
	logger := logging.From(ctx)

	result := c.searcher.Search(ctx, c.Query(clientName))
	searchText := result.Text
	if !result.Success {
		logger.Warn("web search failed, generating brief with limited information", "client", clientName, "reason", result.Text)
		searchText = fmt.Sprintf("Limited information available for %s. %s", clientName, result.Text)
	}

	brief, err := c.complete(ctx, clientName, searchText)
	if err != nil {
		logger.Error("failed to generate client brief", "client", clientName, "error", err)
		return Fallback(clientName, c.country)
	}

	logger.Info("client brief generated", "client", clientName, "length", len(brief))
	return brief
}

// Query returns the web search query used for the client
func (c *client) Query(clientName string) string {
	return fmt.Sprintf("%q %s %s", clientName, c.country, c.keywords)
}

func (c *client) complete(ctx context.Context, clientName, searchText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(buildPrompt(clientName, c.country, searchText))})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate brief", goerr.V("client", clientName))
	}

	brief := strings.TrimSpace(strings.Join(resp.Texts, ""))
	brief = strings.Trim(brief, "\"")
	if brief == "" {
		return "", goerr.New("LLM returned an empty brief", goerr.V("client", clientName))
	}
	return brief, nil
}

// Fallback is the brief used when nothing better can be produced
func Fallback(clientName, country string) string {
	return fmt.Sprintf("%s is a business organization operating in %s. Industry sector, company size, and market presence details require additional research to provide comprehensive information.", clientName, country)
}
