// Package openai implements [proto.Client] for OpenAI and compatible APIs.
package openai

import (
	"context"
	"net/http"

	"github.com/duetcli/duet/internal/proto"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

var _ proto.Client = &Client{}

// Client is the openai client.
type Client struct {
	*openai.Client
}

// Config represents the configuration for the OpenAI API client.
type Config struct {
	AuthToken  string
	BaseURL    string
	HTTPClient interface {
		Do(*http.Request) (*http.Response, error)
	}
	APIType string
}

// DefaultConfig returns the default configuration for the OpenAI API client.
func DefaultConfig(authToken string) Config {
	return Config{
		AuthToken: authToken,
	}
}

const azureAPIVersion = "2024-06-01"

// New creates a new [Client] with the given [Config].
func New(config Config) *Client {
	opts := []option.RequestOption{}

	if config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(config.HTTPClient))
	}

	if config.APIType == "azure" {
		opts = append(opts, azure.WithAPIKey(config.AuthToken))
		if config.BaseURL != "" {
			opts = append(opts, azure.WithEndpoint(config.BaseURL, azureAPIVersion))
		}
	} else {
		opts = append(opts, option.WithAPIKey(config.AuthToken))
		if config.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(config.BaseURL))
		}
	}
	client := openai.NewClient(opts...)
	return &Client{
		Client: &client,
	}
}

// Complete implements proto.Client.
func (c *Client) Complete(ctx context.Context, request proto.Request) (proto.Response, error) {
	body := openai.ChatCompletionNewParams{
		Model:    request.Model,
		Messages: fromProtoMessages(request.Messages),
	}

	if request.Temperature != nil {
		body.Temperature = openai.Float(*request.Temperature)
	}
	if request.TopP != nil {
		body.TopP = openai.Float(*request.TopP)
	}
	if len(request.Stop) > 0 {
		body.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: request.Stop,
		}
	}
	if request.MaxTokens != nil {
		body.MaxTokens = openai.Int(*request.MaxTokens)
	}

	resp, err := c.Chat.Completions.New(ctx, body)
	if err != nil {
		return proto.Response{}, err //nolint:wrapcheck
	}
	if len(resp.Choices) == 0 {
		return proto.Response{}, proto.ErrNoContent
	}

	choice := resp.Choices[0]
	return proto.Response{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: proto.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
