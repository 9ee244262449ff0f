package webhook

import (
	"context"
	"fmt"
	"net/http"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

const (
	discordEmbedColor = 5814783
	discordFooter     = "Generated by Autonomous Content Agent"
)

// Discord posts drafts to a channel webhook as an embed.
type Discord struct {
	url    string
	client *http.Client
}

var _ ports.Destination = (*Discord)(nil)

// NewDiscord registers the webhook URL; an empty URL disables the destination.
func NewDiscord(url string, client *http.Client) *Discord {
	if client == nil {
		client = defaultClient()
	}
	return &Discord{url: url, client: client}
}

// Name identifies the destination in logs.
func (d *Discord) Name() string { return "discord" }

// Enabled reports whether a webhook is configured.
func (d *Discord) Enabled() bool { return d.url != "" }

// FormatDiscord renders a draft in Discord markdown.
func FormatDiscord(draft domain.Draft) string {
	return fmt.Sprintf("**%s**\n\n%s\n\nSource: [%s](%s)", draft.Title, draft.Body, sourceLabel, draft.Link)
}

// Send posts the header as content and the draft as an embed description.
func (d *Discord) Send(ctx context.Context, draft domain.Draft) error {
	payload := map[string]any{
		"content": DraftHeader,
		"embeds": []map[string]any{
			{
				"description": FormatDiscord(draft),
				"color":       discordEmbedColor,
				"footer":      map[string]string{"text": discordFooter},
			},
		},
	}
	if err := postJSON(ctx, d.client, d.url, payload); err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	return nil
}
