// Package proto shared protocol.
package proto

import (
	"context"
	"errors"
)

// Roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrNoContent happens when the model returns no content.
var ErrNoContent = errors.New("no content")

// Message is a message in the conversation.
type Message struct {
	Role    string
	Content string
}

// Request is a completion request.
type Request struct {
	Messages    []Message
	API         string
	Model       string
	Temperature *float64
	TopP        *float64
	Stop        []string
	MaxTokens   *int64
}

// Response is the model's full reply to a [Request].
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
}

// Usage is the token accounting a provider reports for one request.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Client is a completion client.
type Client interface {
	// Complete sends the request and blocks until the whole reply arrived
	// or the context got canceled.
	Complete(context.Context, Request) (Response, error)
}
