// Package anthropic implements [proto.Client] for Anthropic.
package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/duetcli/duet/internal/proto"
)

var _ proto.Client = &Client{}

const defaultMaxTokens int64 = 4096

// Config represents the configuration for the Anthropic API client.
type Config struct {
	AuthToken  string
	BaseURL    string
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration for the Anthropic API client.
func DefaultConfig(authToken string) Config {
	return Config{
		AuthToken:  authToken,
		HTTPClient: &http.Client{},
	}
}

// Client is a client for the Anthropic API.
type Client struct {
	*anthropic.Client
}

// New creates a new [Client] with the given [Config].
func New(config Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(config.AuthToken),
		option.WithHTTPClient(config.HTTPClient),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(config.BaseURL, "/v1")))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		Client: &client,
	}
}

// Complete implements proto.Client.
func (c *Client) Complete(ctx context.Context, request proto.Request) (proto.Response, error) {
	system, messages := fromProtoMessages(request.Messages)
	body := anthropic.MessageNewParams{
		Model:         anthropic.Model(request.Model),
		Messages:      messages,
		System:        system,
		StopSequences: request.Stop,
	}

	if request.MaxTokens != nil {
		body.MaxTokens = *request.MaxTokens
	} else {
		body.MaxTokens = defaultMaxTokens
	}

	if request.Temperature != nil {
		body.Temperature = anthropic.Float(*request.Temperature)
	}

	if request.TopP != nil {
		body.TopP = anthropic.Float(*request.TopP)
	}

	msg, err := c.Messages.New(ctx, body)
	if err != nil {
		return proto.Response{}, err //nolint:wrapcheck
	}
	if msg == nil || len(msg.Content) == 0 {
		return proto.Response{}, proto.ErrNoContent
	}

	return toProtoResponse(msg), nil
}
