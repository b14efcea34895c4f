// Package slack forwards banner notices to an operations Slack channel.
package slack

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"

	"github.com/publicworks/portal/internal/notify"
)

// SlackAPI abstracts the subset of the Slack client used by the sink.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostMessage(channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// Sink posts each notice as a message to a fixed ops channel.
type Sink struct {
	api       SlackAPI
	channelID string
}

// Compile-time interface check.
var _ notify.Sink = (*Sink)(nil)

// New creates a Sink posting to channelID via api.
func New(api SlackAPI, channelID string) *Sink {
	return &Sink{api: api, channelID: channelID}
}

func (s *Sink) Name() string { return "slack" }

func (s *Sink) Publish(_ context.Context, n notify.Notice) error {
	_, _, err := s.api.PostMessage(s.channelID, slacklib.MsgOptionText(FormatNotice(n), false))
	if err != nil {
		return fmt.Errorf("slack.Sink.Publish: %w", err)
	}
	return nil
}

// FormatNotice renders a notice as a single Slack message line.
func FormatNotice(n notify.Notice) string {
	text := n.Banner.Message
	if n.Banner.Title != "" {
		text = n.Banner.Title + ": " + text
	}
	return fmt.Sprintf("[%s] %s (tenant %s)", n.Banner.Variant, text, n.TenantID)
}
