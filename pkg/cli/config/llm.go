package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4"

	briefTemperature   = 0.1
	briefMaxTokens     = 180
	summaryTemperature = 0.3
	summaryMaxTokens   = 1200
)

// LLM holds configuration for the LLM provider
type LLM struct {
	provider       string
	openaiAPIKey   string
	openaiModel    string
	geminiProject  string
	geminiLocation string
	geminiModel    string
}

// LLMClients carries one client per pipeline stage. Brief generation runs
// with low temperature and a short answer, the summary with a moderate one.
type LLMClients struct {
	Brief   gollem.LLMClient
	Summary gollem.LLMClient
}

// Flags returns CLI flags for LLM configuration
func (x *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider (openai, gemini)",
			Category:    "LLM",
			Value:       ProviderOpenAI,
			Sources:     cli.EnvVars("SMARTCOMMENT_LLM_PROVIDER"),
			Destination: &x.provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("SMARTCOMMENT_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &x.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model name",
			Category:    "LLM",
			Value:       DefaultOpenAIModel,
			Sources:     cli.EnvVars("SMARTCOMMENT_OPENAI_MODEL"),
			Destination: &x.openaiModel,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "LLM",
			Sources:     cli.EnvVars("SMARTCOMMENT_GEMINI_PROJECT"),
			Destination: &x.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("SMARTCOMMENT_GEMINI_LOCATION"),
			Destination: &x.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name (provider default when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("SMARTCOMMENT_GEMINI_MODEL"),
			Destination: &x.geminiModel,
		},
	}
}

func (x LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", x.provider),
		slog.String("openai_model", x.openaiModel),
		slog.Bool("openai_api_key", x.openaiAPIKey != ""),
		slog.String("gemini_project", x.geminiProject),
		slog.String("gemini_location", x.geminiLocation),
	)
}

// Configured reports whether the selected provider has its credential
func (x *LLM) Configured() bool {
	switch x.provider {
	case ProviderOpenAI:
		return x.openaiAPIKey != ""
	case ProviderGemini:
		return x.geminiProject != ""
	}
	return false
}

// Configure creates the per-stage LLM clients. Returns nil when the
// selected provider has no credential; model names in models take
// precedence over the flags.
func (x *LLM) Configure(ctx context.Context, models ModelConfig) (*LLMClients, error) {
	switch x.provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return nil, goerr.Wrap(ErrUnknownProvider, "invalid --llm-provider", goerr.V(ProviderKey, x.provider))
	}

	if !x.Configured() {
		return nil, nil
	}

	briefClient, err := x.newClient(ctx, pick(models.BriefModel, x.model()), briefTemperature, briefMaxTokens)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create brief LLM client")
	}

	summaryClient, err := x.newClient(ctx, pick(models.SummaryModel, x.model()), summaryTemperature, summaryMaxTokens)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create summary LLM client")
	}

	return &LLMClients{Brief: briefClient, Summary: summaryClient}, nil
}

func (x *LLM) model() string {
	if x.provider == ProviderGemini {
		return x.geminiModel
	}
	return x.openaiModel
}

func (x *LLM) newClient(ctx context.Context, model string, temperature float32, maxTokens int) (gollem.LLMClient, error) {
	switch x.provider {
	case ProviderGemini:
		opts := []gemini.Option{
			gemini.WithTemperature(temperature),
			gemini.WithMaxTokens(int32(maxTokens)),
		}
		if model != "" {
			opts = append(opts, gemini.WithModel(model))
		}
		client, err := gemini.New(ctx, x.geminiProject, x.geminiLocation, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil

	default:
		opts := []openai.Option{
			openai.WithTemperature(temperature),
			openai.WithMaxTokens(maxTokens),
		}
		if model != "" {
			opts = append(opts, openai.WithModel(model))
		}
		client, err := openai.New(ctx, x.openaiAPIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil
	}
}

func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
