package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/cli/config"
	"github.com/secmon-lab/smartcomment/pkg/service/brief"
	"github.com/secmon-lab/smartcomment/pkg/service/summary"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// pipelineConfig gathers the flags every pipeline-running command shares
type pipelineConfig struct {
	app    config.App
	notion config.Notion
	llm    config.LLM
	search config.Search
	slack  config.Slack
}

func (x *pipelineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.app.Flags()...)
	flags = append(flags, x.notion.Flags()...)
	flags = append(flags, x.llm.Flags()...)
	flags = append(flags, x.search.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

func (x pipelineConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("config", x.app),
		slog.Any("notion", x.notion),
		slog.Any("llm", x.llm),
		slog.Any("search", x.search),
		slog.Any("slack", x.slack),
	)
}

// Build creates every service from the flags and bundles them into use cases.
// Missing credentials leave the matching service unset; Health reports them.
func (x *pipelineConfig) Build(ctx context.Context) (*usecase.UseCases, error) {
	logger := logging.Default()

	appCfg, err := x.app.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration file")
	}

	searchSvc, err := x.search.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize search service")
	}

	opts := []usecase.Option{
		usecase.WithSearch(searchSvc),
		usecase.WithCredentials(usecase.Credentials{
			NotionToken:      x.notion.HasToken(),
			NotionDatabaseID: x.notion.HasDatabaseID(),
			LLMAPIKey:        x.llm.Configured(),
			SearchAPIKey:     x.search.HasAPIKey(),
			SearchEngineID:   x.search.HasEngineID(),
		}),
	}

	notionSvc, err := x.notion.Configure(appCfg.Schema())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize notion service")
	}
	if notionSvc != nil {
		opts = append(opts, usecase.WithNotion(notionSvc))
	} else {
		logger.Warn("Notion token or database ID not configured, submissions will fail")
	}

	clients, err := x.llm.Configure(ctx, appCfg.LLM)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize LLM clients")
	}
	if clients != nil {
		briefSvc, err := brief.New(clients.Brief, searchSvc, appCfg.BriefOptions()...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize brief service")
		}
		summarySvc, err := summary.New(clients.Summary)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize summary service")
		}
		opts = append(opts,
			usecase.WithBrief(briefSvc),
			usecase.WithSummary(summarySvc),
			usecase.WithLLMClient(clients.Brief),
		)
	} else {
		logger.Warn("LLM credential not configured, submissions will fail")
	}

	slackSvc, err := x.slack.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	if slackSvc != nil {
		opts = append(opts, usecase.WithNotifier(slackSvc))
		logger.Info("Slack notification enabled")
	}

	return usecase.New(opts...), nil
}
