// Package google implements [proto.Client] for the Google Gemini API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/duetcli/duet/internal/proto"
)

var _ proto.Client = &Client{}

const defaultMaxTokens uint = 4096

// Config represents the configuration for the Google API client.
type Config struct {
	AuthToken  string
	BaseURL    string
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration for the Google API client.
func DefaultConfig(authToken string) Config {
	return Config{
		AuthToken:  authToken,
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		HTTPClient: &http.Client{},
	}
}

// Part is a datatype containing media that is part of a multi-part Content message.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is the base structured datatype containing multi-part content of a message.
type Content struct {
	Parts []Part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

// GenerationConfig are the options for model generation and outputs. Not all parameters are configurable for every model.
type GenerationConfig struct {
	StopSequences   []string `json:"stopSequences,omitempty"`
	CandidateCount  uint     `json:"candidateCount,omitempty"`
	MaxOutputTokens uint     `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
}

// GenerateContentRequest represents the valid parameters and value options for the request.
type GenerateContentRequest struct {
	Contents         []Content        `json:"contents,omitempty"`
	GenerationConfig GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate represents a response candidate generated from the model.
type Candidate struct {
	Content      Content `json:"content,omitempty"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        uint    `json:"index,omitempty"`
}

// UsageMetadata is the token accounting for a generation request.
type UsageMetadata struct {
	PromptTokenCount     int64 `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount int64 `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount      int64 `json:"totalTokenCount,omitempty"`
}

// GenerateContentResponse represents a response to a Google generation request.
type GenerateContentResponse struct {
	Candidates    []Candidate   `json:"candidates,omitempty"`
	UsageMetadata UsageMetadata `json:"usageMetadata,omitempty"`
}

// APIError is the error envelope returned by the Google API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google: %s, status code: %d", e.Message, e.StatusCode)
}

// Client is a client for the Google API.
type Client struct {
	config Config

	requestBuilder RequestBuilder
}

// New creates a new Client with the given configuration.
func New(config Config) *Client {
	return &Client{
		config:         config,
		requestBuilder: NewRequestBuilder(),
	}
}

// Complete implements proto.Client.
func (c *Client) Complete(ctx context.Context, request proto.Request) (proto.Response, error) {
	body := GenerateContentRequest{
		Contents: fromProtoMessages(request.Messages),
		GenerationConfig: GenerationConfig{
			CandidateCount:  1,
			StopSequences:   request.Stop,
			MaxOutputTokens: defaultMaxTokens,
			Temperature:     request.Temperature,
			TopP:            request.TopP,
		},
	}

	if request.MaxTokens != nil {
		body.GenerationConfig.MaxOutputTokens = uint(*request.MaxTokens) //nolint:gosec
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.completionURL(request.Model), withBody(body))
	if err != nil {
		return proto.Response{}, err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.AuthToken)

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return proto.Response{}, fmt.Errorf("google: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if isFailureStatusCode(resp) {
		return proto.Response{}, c.handleErrorResp(resp)
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return proto.Response{}, fmt.Errorf("google: %w", err)
	}
	if len(out.Candidates) == 0 {
		return proto.Response{}, proto.ErrNoContent
	}

	parts := out.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return proto.Response{}, proto.ErrNoContent
	}

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.Text)
	}

	return proto.Response{
		Content:      sb.String(),
		FinishReason: out.Candidates[0].FinishReason,
		Usage: proto.Usage{
			InputTokens:  out.UsageMetadata.PromptTokenCount,
			OutputTokens: out.UsageMetadata.CandidatesTokenCount,
		},
	}, nil
}

func (c *Client) completionURL(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(c.config.BaseURL, "/"), model)
}

func (c *Client) newRequest(ctx context.Context, method, url string, setters ...requestOption) (*http.Request, error) {
	// Default Options
	args := &requestOptions{
		body:   GenerateContentRequest{},
		header: make(http.Header),
	}
	for _, setter := range setters {
		setter(args)
	}
	req, err := c.requestBuilder.Build(ctx, method, url, args.body, args.header)
	if err != nil {
		return new(http.Request), err
	}
	return req, nil
}

func (c *Client) handleErrorResp(resp *http.Response) error {
	var envelope struct {
		Error *APIError `json:"error,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	envelope.Error.StatusCode = resp.StatusCode
	return envelope.Error
}
