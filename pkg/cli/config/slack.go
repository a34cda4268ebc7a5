package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for the optional record-created notice
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for record notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("SMARTCOMMENT_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving record notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("SMARTCOMMENT_SLACK_CHANNEL"),
			Destination: &x.channel,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("bot_token", x.botToken != ""),
		slog.String("channel", x.channel),
	)
}

// Configure creates the Slack notifier. Returns nil if the token or the
// channel is not set.
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" || x.channel == "" {
		return nil, nil
	}

	svc, err := slack.New(x.botToken, x.channel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack service")
	}
	return svc, nil
}
