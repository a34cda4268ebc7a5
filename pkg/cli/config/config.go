package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/smartcomment/pkg/service/brief"
	"github.com/secmon-lab/smartcomment/pkg/service/notion"
	"github.com/urfave/cli/v3"
)

// AppConfig is the optional TOML file overriding Notion property names,
// the brief search parameters and LLM model names
type AppConfig struct {
	Notion notion.Schema `toml:"notion"`
	Brief  BriefConfig   `toml:"brief"`
	LLM    ModelConfig   `toml:"llm"`
}

// BriefConfig tunes the company background search
type BriefConfig struct {
	Country  string `toml:"country"`
	Keywords string `toml:"keywords"`
}

// ModelConfig overrides the model used for each LLM stage
type ModelConfig struct {
	BriefModel   string `toml:"brief_model"`
	SummaryModel string `toml:"summary_model"`
}

// Schema returns the Notion schema with defaults filled in
func (a *AppConfig) Schema() notion.Schema {
	return a.Notion.Merge(notion.DefaultSchema())
}

// BriefOptions returns brief service options for the configured values
func (a *AppConfig) BriefOptions() []brief.Option {
	var opts []brief.Option
	if a.Brief.Country != "" {
		opts = append(opts, brief.WithCountry(a.Brief.Country))
	}
	if a.Brief.Keywords != "" {
		opts = append(opts, brief.WithKeywords(a.Brief.Keywords))
	}
	return opts
}

// Validate checks the merged schema: property names are non-blank and
// unique, and the two type labels differ
func (a *AppConfig) Validate() error {
	schema := a.Schema()

	seen := make(map[string]bool)
	for _, name := range schema.PropertyNames() {
		if strings.TrimSpace(name) == "" {
			return goerr.Wrap(ErrEmptyPropertyName, "invalid notion schema")
		}
		if seen[name] {
			return goerr.Wrap(ErrDuplicatePropertyID, "invalid notion schema", goerr.V(PropertyNameKey, name))
		}
		seen[name] = true
	}

	if strings.TrimSpace(schema.NewLabel) == "" || strings.TrimSpace(schema.FollowUpLabel) == "" {
		return goerr.Wrap(ErrEmptyPropertyName, "type labels must not be empty")
	}
	if schema.NewLabel == schema.FollowUpLabel {
		return goerr.Wrap(ErrDuplicateSelectLabel, "invalid notion schema", goerr.V("label", schema.NewLabel))
	}

	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config: "+err.Error(), goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// App holds the --config flag
type App struct {
	path string
}

// Flags returns CLI flags for the configuration file
func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file (optional)",
			Sources:     cli.EnvVars("SMARTCOMMENT_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x App) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the file when a path is set, otherwise returns the defaults
func (x *App) Configure() (*AppConfig, error) {
	if x.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(x.path)
}
