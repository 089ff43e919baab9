package config

import (
	"log/slog"

	"github.com/stayops-lab/xenia/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for maintenance notifications",
			Sources:     cli.EnvVars("XENIA_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post maintenance notifications to",
			Sources:     cli.EnvVars("XENIA_SLACK_CHANNEL_ID"),
			Destination: &x.channelID,
		},
	}
}

// LogValue renders the configuration without exposing the token
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// Configured reports whether notifications are fully configured
func (x *Slack) Configured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure builds the Slack notifier. Returns nil when not configured.
func (x *Slack) Configure() (notify.Service, error) {
	if !x.Configured() {
		return nil, nil
	}
	return notify.NewSlack(x.botToken, x.channelID)
}
