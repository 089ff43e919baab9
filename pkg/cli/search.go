package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/cli/config"
	"github.com/stayops-lab/xenia/pkg/usecase"
	"github.com/stayops-lab/xenia/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSearch() *cli.Command {
	var topK int
	var minScore float64
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "top-k",
			Usage:       "Maximum number of results (0 returns everything above the threshold)",
			Value:       5,
			Sources:     cli.EnvVars("XENIA_SEARCH_TOP_K"),
			Destination: &topK,
		},
		&cli.FloatFlag{
			Name:        "min-score",
			Usage:       "Similarity threshold; only strictly greater scores are returned",
			Value:       0.8,
			Sources:     cli.EnvVars("XENIA_SEARCH_MIN_SCORE"),
			Destination: &minScore,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:      "search",
		Usage:     "Search past maintenance requests by similarity",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("query argument is required")
			}

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

			uc := usecase.New(repo, llmClient)

			results, err := uc.SearchSimilar(ctx, query, topK, minScore)
			if err != nil {
				return goerr.Wrap(err, "search failed")
			}

			if len(results) == 0 {
				fmt.Println("No matching requests.")
				return nil
			}

			score := color.New(color.FgGreen, color.Bold)
			for _, res := range results {
				score.Printf("%.3f", res.Score)
				fmt.Printf("  [%s] %s: %s\n", res.Request.ID, res.Request.HotelName, res.Request.Details)
			}
			return nil
		},
	}
}
