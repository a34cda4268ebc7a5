package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/cli/config"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSearch() *cli.Command {
	var searchCfg config.Search

	return &cli.Command{
		Name:      "search",
		Usage:     "Run one web search the way the client brief does",
		ArgsUsage: "<query>",
		Flags:     searchCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")

			searchSvc, err := searchCfg.Configure()
			if err != nil {
				return err
			}

			uc := usecase.New(usecase.WithSearch(searchSvc))
			result, err := uc.Search.Search(ctx, query)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if !result.Success {
				color.New(color.FgRed).Fprintf(w, "search failed: %s\n", result.Text)
				return goerr.New("search failed", goerr.V(usecase.QueryKey, result.Query))
			}

			color.New(color.Bold).Fprintf(w, "Results for %q\n\n", result.Query)
			fmt.Fprintln(w, result.Text)
			return nil
		},
	}
}
