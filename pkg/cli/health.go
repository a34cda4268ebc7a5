package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHealth() *cli.Command {
	var verbose bool
	var pipeline pipelineConfig

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Also call Notion, the LLM and the search provider",
			Destination: &verbose,
		},
	}
	flags = append(flags, pipeline.Flags()...)

	return &cli.Command{
		Name:  "health",
		Usage: "Report credential presence and, with --verbose, connectivity",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := pipeline.Build(ctx)
			if err != nil {
				return err
			}

			report := uc.Health.Check(ctx, verbose)
			printHealthReport(c.Root().Writer, report)

			if !report.OK {
				return goerr.New("health check failed", goerr.V("missing", report.Missing))
			}
			return nil
		},
	}
}

func printHealthReport(w io.Writer, report *usecase.HealthReport) {
	ok := color.New(color.FgGreen)
	ng := color.New(color.FgRed)
	bold := color.New(color.Bold)

	mark := func(b bool) string {
		if b {
			return ok.Sprint("✔")
		}
		return ng.Sprint("✘")
	}

	bold.Fprintln(w, "Credentials")
	names := make([]string, 0, len(report.Credentials))
	for name := range report.Credentials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", mark(report.Credentials[name]), name)
	}

	if len(report.Checks) > 0 {
		bold.Fprintln(w, "Connectivity")
		for _, check := range report.Checks {
			line := fmt.Sprintf("  %s %-7s %s", mark(check.OK), check.Name, check.Duration.Round(time.Millisecond))
			if check.OK && check.Detail != "" {
				line += " " + check.Detail
			}
			if !check.OK {
				line += " " + ng.Sprint(check.Error)
			}
			fmt.Fprintln(w, line)
		}
	}

	if report.OK {
		ok.Fprintln(w, "OK")
	} else {
		ng.Fprintln(w, "NG")
	}
}
