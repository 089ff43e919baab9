package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// slackNotifier posts maintenance events to one Slack channel
type slackNotifier struct {
	api       *slack.Client
	channelID string
}

// NewSlack creates a notifier posting to the given Slack channel
func NewSlack(token, channelID string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &slackNotifier{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

func (n *slackNotifier) NotifyRequestCommitted(ctx context.Context, req *model.MaintenanceRequest) error {
	where := req.Location
	if req.RoomNumber > 0 {
		where = fmt.Sprintf("room %d", req.RoomNumber)
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "New maintenance request", false, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*%s* (%s)\n%s", req.HotelName, where, req.Details),
				false, false),
			nil, nil,
		),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("ID: `%s`", req.ID), false, false),
		),
	}

	_, _, err := n.api.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fmt.Sprintf("New maintenance request at %s", req.HotelName), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack notification",
			goerr.V("channel_id", n.channelID),
			goerr.V("request_id", req.ID),
		)
	}
	return nil
}
