package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/cli/config"
	httpctrl "github.com/stayops-lab/xenia/pkg/controller/http"
	"github.com/stayops-lab/xenia/pkg/usecase"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var copilotCfg config.Copilot
	var catalogCfg config.Catalog
	var slackCfg config.Slack
	var archiveCfg config.Archive

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("XENIA_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, copilotCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}

			ucOpts := []usecase.Option{
				usecase.WithMaxIterations(copilotCfg.MaxIterations()),
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Slack notifier")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack notifications enabled", "slack", slackCfg)
			}

			archiveSvc, err := archiveCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize transcript archive")
			}
			if archiveSvc != nil {
				ucOpts = append(ucOpts, usecase.WithArchive(archiveSvc))
				logging.Default().Info("Transcript archival enabled")
			}

			uc := usecase.New(repo, llmClient, ucOpts...)

			// Seed the hotel catalog before accepting traffic so the
			// copilot's system prompt sees the full hotel list
			if catalogCfg.Configured() {
				catalog, err := catalogCfg.Load()
				if err != nil {
					return goerr.Wrap(err, "failed to load hotel catalog")
				}
				hotels, bookings := catalog.ToModels()
				if err := uc.SeedCatalog(ctx, hotels, bookings); err != nil {
					return goerr.Wrap(err, "failed to seed hotel catalog")
				}
				logging.Default().Info("Seeded hotel catalog",
					"hotels", len(hotels), "bookings", len(bookings))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
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

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
