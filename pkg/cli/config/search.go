package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/service/search"
	"github.com/urfave/cli/v3"
)

// Search holds configuration for Google Custom Search
type Search struct {
	apiKey   string
	engineID string
}

// Flags returns CLI flags for search configuration
func (x *Search) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-api-key",
			Usage:       "Google Custom Search API key",
			Category:    "Search",
			Sources:     cli.EnvVars("SMARTCOMMENT_GOOGLE_API_KEY", "GOOGLE_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "google-search-engine-id",
			Usage:       "Google Programmable Search Engine ID",
			Category:    "Search",
			Value:       search.DefaultEngineID,
			Sources:     cli.EnvVars("SMARTCOMMENT_GOOGLE_SEARCH_ENGINE_ID", "GOOGLE_SEARCH_ENGINE_ID"),
			Destination: &x.engineID,
		},
	}
}

func (x Search) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("api_key", x.apiKey != ""),
		slog.String("engine_id", x.engineID),
	)
}

func (x *Search) HasAPIKey() bool   { return x.apiKey != "" }
func (x *Search) HasEngineID() bool { return x.engineID != "" }

// Configure creates the search service. It is always returned; without an
// API key every search is an unsuccessful result.
func (x *Search) Configure() (search.Service, error) {
	opts := []search.Option{}
	if x.engineID != "" {
		opts = append(opts, search.WithEngineID(x.engineID))
	}
	svc, err := search.New(x.apiKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create search service")
	}
	return svc, nil
}
