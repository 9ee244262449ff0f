package webhook

import (
	"context"
	"fmt"
	"net/http"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// Slack posts drafts to an incoming webhook as Block Kit messages.
type Slack struct {
	url    string
	client *http.Client
}

var _ ports.Destination = (*Slack)(nil)

// NewSlack registers the webhook URL; an empty URL disables the destination.
func NewSlack(url string, client *http.Client) *Slack {
	if client == nil {
		client = defaultClient()
	}
	return &Slack{url: url, client: client}
}

// Name identifies the destination in logs.
func (s *Slack) Name() string { return "slack" }

// Enabled reports whether a webhook is configured.
func (s *Slack) Enabled() bool { return s.url != "" }

// FormatSlack renders a draft in Slack mrkdwn, where links are <url|text>.
func FormatSlack(draft domain.Draft) string {
	return fmt.Sprintf("*%s*\n\n%s\n\nSource: <%s|%s>", draft.Title, draft.Body, draft.Link, sourceLabel)
}

// Send posts a header block followed by the formatted draft.
func (s *Slack) Send(ctx context.Context, draft domain.Draft) error {
	payload := map[string]any{
		"blocks": []map[string]any{
			{
				"type": "header",
				"text": map[string]any{"type": "plain_text", "text": DraftHeader, "emoji": true},
			},
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": FormatSlack(draft)},
			},
		},
	}
	if err := postJSON(ctx, s.client, s.url, payload); err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	return nil
}
