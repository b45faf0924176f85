// Package ollama implements [proto.Client] for Ollama.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/duetcli/duet/internal/proto"
	"github.com/ollama/ollama/api"
)

var _ proto.Client = &Client{}

// Config represents the configuration for the Ollama API client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration for the Ollama API client.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:11434/",
		HTTPClient: &http.Client{},
	}
}

// Client ollama client.
type Client struct {
	*api.Client
}

// New creates a new [Client] with the given [Config].
func New(config Config) (*Client, error) {
	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	client := api.NewClient(u, config.HTTPClient)
	return &Client{
		Client: client,
	}, nil
}

// Complete implements proto.Client.
func (c *Client) Complete(ctx context.Context, request proto.Request) (proto.Response, error) {
	stream := false
	body := &api.ChatRequest{
		Model:    request.Model,
		Messages: fromProtoMessages(request.Messages),
		Stream:   &stream,
		Options:  map[string]any{},
	}

	if len(request.Stop) > 0 {
		body.Options["stop"] = request.Stop[0]
	}
	if request.MaxTokens != nil {
		body.Options["num_ctx"] = *request.MaxTokens
	}
	if request.Temperature != nil {
		body.Options["temperature"] = *request.Temperature
	}
	if request.TopP != nil {
		body.Options["top_p"] = *request.TopP
	}

	var out proto.Response
	err := c.Chat(ctx, body, func(resp api.ChatResponse) error {
		out.Content += resp.Message.Content
		if resp.Done {
			out.FinishReason = resp.DoneReason
			out.Usage.InputTokens += int64(resp.Metrics.PromptEvalCount)
			out.Usage.OutputTokens += int64(resp.Metrics.EvalCount)
		}
		return nil
	})
	if err != nil {
		return proto.Response{}, fmt.Errorf("ollama: %w", err)
	}
	return out, nil
}
