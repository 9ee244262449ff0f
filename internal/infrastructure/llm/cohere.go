package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/core"

	"ContentAgent/internal/config"
	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

const defaultCohereModel = "command-r"

// CohereClient implements ports.Completer with the Cohere Chat API.
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

var _ ports.Completer = (*CohereClient)(nil)

// NewCohereClient builds a client from configuration.
func NewCohereClient(cfg config.LLMConfig) *CohereClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	model := cfg.Model
	if model == "" {
		model = defaultCohereModel
	}
	return &CohereClient{client: client, model: model}
}

// Complete sends prompt as a single chat message.
func (c *CohereClient) Complete(ctx context.Context, prompt string) domain.Completion {
	model := c.model
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return classifyCohereError(err)
	}
	if resp == nil {
		return domain.Failed(errors.New("cohere chat returned empty response"))
	}
	return domain.Succeeded(resp.Text)
}

func classifyCohereError(err error) domain.Completion {
	wrapped := fmt.Errorf("cohere chat: %w", err)

	var tooMany *cohere.TooManyRequestsError
	if errors.As(err, &tooMany) {
		return domain.RateLimited(wrapped)
	}
	var apiErr *core.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return domain.RateLimited(wrapped)
	}
	return domain.Failed(wrapped)
}
