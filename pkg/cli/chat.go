package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/agent/tool"
	"github.com/stayops-lab/xenia/pkg/cli/config"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/usecase"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var copilotCfg config.Copilot
	var catalogCfg config.Catalog

	flags := repoCfg.Flags()
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, copilotCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Talk to the maintenance copilot from the terminal",
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

			uc := usecase.New(repo, llmClient,
				usecase.WithMaxIterations(copilotCfg.MaxIterations()),
			)

			if catalogCfg.Configured() {
				catalog, err := catalogCfg.Load()
				if err != nil {
					return goerr.Wrap(err, "failed to load hotel catalog")
				}
				hotels, bookings := catalog.ToModels()
				if err := uc.SeedCatalog(ctx, hotels, bookings); err != nil {
					return goerr.Wrap(err, "failed to seed hotel catalog")
				}
			}

			trace := color.New(color.FgHiBlack)
			prompt := color.New(color.FgCyan, color.Bold)
			answer := color.New(color.FgHiWhite)

			// Tool progress shows up inline while the model works
			ctx = tool.WithUpdate(ctx, func(ctx context.Context, message string) {
				trace.Fprintf(os.Stderr, "  … %s\n", message)
			})

			fmt.Println("Maintenance copilot. Type 'exit' to quit.")

			var sessionID types.SessionID
			scanner := bufio.NewScanner(os.Stdin)
			for {
				prompt.Print("you> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				newID, reply, err := uc.Chat(ctx, sessionID, line)
				if err != nil {
					if ctx.Err() != nil {
						return goerr.Wrap(err, "chat aborted")
					}
					trace.Fprintf(os.Stderr, "  ! %s\n", err.Error())
					continue
				}
				sessionID = newID

				answer.Printf("copilot> %s\n", reply)
			}

			return scanner.Err()
		},
	}
}
