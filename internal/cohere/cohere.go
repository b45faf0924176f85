// Package cohere implements [proto.Client] for Cohere.
package cohere

import (
	"context"
	"fmt"
	"net/http"

	cohere "github.com/cohere-ai/cohere-go/v2"
	"github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/duetcli/duet/internal/proto"
)

var _ proto.Client = &Client{}

// Config represents the configuration for the Cohere API client.
type Config struct {
	AuthToken  string
	BaseURL    string
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration for the Cohere API client.
func DefaultConfig(authToken string) Config {
	return Config{
		AuthToken:  authToken,
		BaseURL:    "",
		HTTPClient: &http.Client{},
	}
}

// Client cohere client.
type Client struct {
	*client.Client
}

// New creates a new [Client] with the given [Config].
func New(config Config) *Client {
	opts := []option.RequestOption{
		client.WithToken(config.AuthToken),
		client.WithHTTPClient(config.HTTPClient),
	}

	if config.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(config.BaseURL))
	}

	return &Client{
		Client: client.NewClient(opts...),
	}
}

// Complete implements proto.Client.
func (c *Client) Complete(ctx context.Context, request proto.Request) (proto.Response, error) {
	history, message := fromProtoMessages(request.Messages)
	body := &cohere.ChatRequest{
		Model:         cohere.String(request.Model),
		Message:       message,
		ChatHistory:   history,
		Temperature:   request.Temperature,
		P:             request.TopP,
		StopSequences: request.Stop,
	}

	if request.MaxTokens != nil {
		body.MaxTokens = cohere.Int(int(*request.MaxTokens))
	}

	resp, err := c.Chat(ctx, body)
	if err != nil {
		return proto.Response{}, fmt.Errorf("cohere: %w", err)
	}
	if resp.Text == "" {
		return proto.Response{}, proto.ErrNoContent
	}

	return toProtoResponse(resp), nil
}
