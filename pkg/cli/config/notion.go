package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/service/notion"
	"github.com/urfave/cli/v3"
)

// Notion holds configuration for the Notion database the records go to
type Notion struct {
	token      string
	databaseID string
}

// Flags returns CLI flags for Notion configuration
func (x *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-token",
			Usage:       "Notion integration token",
			Category:    "Notion",
			Sources:     cli.EnvVars("SMARTCOMMENT_NOTION_TOKEN", "NOTION_TOKEN"),
			Destination: &x.token,
		},
		&cli.StringFlag{
			Name:        "notion-database-id",
			Usage:       "Notion database ID receiving SMART records",
			Category:    "Notion",
			Sources:     cli.EnvVars("SMARTCOMMENT_NOTION_DATABASE_ID", "NOTION_DATABASE_ID"),
			Destination: &x.databaseID,
		},
	}
}

func (x Notion) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("token", x.token != ""),
		slog.String("database_id", x.databaseID),
	)
}

func (x *Notion) HasToken() bool      { return x.token != "" }
func (x *Notion) HasDatabaseID() bool { return x.databaseID != "" }

// Configure creates the Notion service. Returns nil if the token or the
// database ID is missing.
func (x *Notion) Configure(schema notion.Schema) (notion.Service, error) {
	if x.token == "" || x.databaseID == "" {
		return nil, nil
	}

	svc, err := notion.New(x.token, x.databaseID, notion.WithSchema(schema))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Notion service")
	}
	return svc, nil
}
