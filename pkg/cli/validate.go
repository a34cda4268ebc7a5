package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var pipeline pipelineConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file and, when Notion is configured, the database properties",
		Flags:   pipeline.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			appCfg, err := pipeline.app.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			schema := appCfg.Schema()
			logger.Info("Configuration validation passed",
				"properties", schema.PropertyNames(),
				"new_label", schema.NewLabel,
				"follow_up_label", schema.FollowUpLabel,
			)

			if !pipeline.notion.HasToken() || !pipeline.notion.HasDatabaseID() {
				logger.Info("Notion not configured, skipping database property check")
				return nil
			}

			uc, err := pipeline.Build(ctx)
			if err != nil {
				return err
			}

			missing, err := uc.Health.CheckSchema(ctx)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				for _, name := range missing {
					logger.Warn("Notion database property not found", "property", name)
				}
				return goerr.New("Notion database is missing properties", goerr.V("missing", missing))
			}

			logger.Info("Notion database property check passed")
			return nil
		},
	}
}
