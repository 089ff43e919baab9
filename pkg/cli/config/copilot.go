package config

import (
	"github.com/stayops-lab/xenia/pkg/chat"
	"github.com/urfave/cli/v3"
)

// Copilot holds tuning flags for the conversation loop
type Copilot struct {
	maxIterations int
}

// Flags returns CLI flags for copilot configuration
func (c *Copilot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "copilot-max-iterations",
			Usage:       "Maximum model calls per user message",
			Value:       chat.DefaultMaxIterations,
			Sources:     cli.EnvVars("XENIA_COPILOT_MAX_ITERATIONS"),
			Destination: &c.maxIterations,
		},
	}
}

// MaxIterations returns the configured model-call cap
func (c *Copilot) MaxIterations() int {
	return c.maxIterations
}
