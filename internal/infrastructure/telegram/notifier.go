package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/infrastructure/webhook"
	"ContentAgent/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends drafts to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Destination = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Name identifies the destination in logs.
func (n *Notifier) Name() string { return "telegram" }

// Enabled reports whether both token and chat are configured.
func (n *Notifier) Enabled() bool { return n.botToken != "" && n.chatID != "" }

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown backslash-escapes the characters legacy Markdown treats as
// entity delimiters, so model output cannot leave an entity unclosed.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// Format renders a draft in Telegram's legacy Markdown. Title and body are
// escaped; the link sits inside the URL part of an entity and is left as is.
func Format(draft domain.Draft) string {
	return fmt.Sprintf("%s\n\n*%s*\n\n%s\n\nSource: [Read original article](%s)",
		webhook.DraftHeader, EscapeMarkdown(draft.Title), EscapeMarkdown(draft.Body), draft.Link)
}

// Send posts a Markdown message to Telegram.
func (n *Notifier) Send(ctx context.Context, draft domain.Draft) error {
	if !n.Enabled() || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(n.apiBase, "/"), n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", Format(draft))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
