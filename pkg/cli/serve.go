package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/cli/config"
	httpctrl "github.com/secmon-lab/smartcomment/pkg/controller/http"
	"github.com/secmon-lab/smartcomment/pkg/utils/async"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var pipeline pipelineConfig
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":3000",
			Sources:     cli.EnvVars("SMARTCOMMENT_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, pipeline.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Configuration", "pipeline", pipeline, "sentry", sentryCfg)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			uc, err := pipeline.Build(ctx)
			if err != nil {
				return err
			}

			httpHandler, err := httpctrl.New(
				httpctrl.WithUseCases(uc),
				httpctrl.WithSentry(sentryCfg.Enabled()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				if err := async.Wait(shutdownCtx); err != nil {
					logging.Default().Warn("pending notifications dropped", "error", err)
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
