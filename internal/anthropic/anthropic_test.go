package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duetcli/duet/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config := DefaultConfig("test-key")
	config.BaseURL = srv.URL
	return New(config)
}

func TestComplete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "claude-3-5-sonnet-latest", req["model"])
		assert.Equal(t, float64(4096), req["max_tokens"])
		msgs, _ := req["messages"].([]any)
		require.Len(t, msgs, 1)
		first, _ := msgs[0].(map[string]any)
		assert.Equal(t, "user", first["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-latest",
			"content": [{"type": "text", "text": "All good!"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 4, "output_tokens": 3}
		}`))
	})

	resp, err := client.Complete(context.Background(), proto.Request{
		Model: "claude-3-5-sonnet-latest",
		Messages: []proto.Message{
			{Role: proto.RoleUser, Content: "What is up?"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "All good!", resp.Content)
	require.Equal(t, "end_turn", resp.FinishReason)
	require.Equal(t, int64(4), resp.Usage.InputTokens)
	require.Equal(t, int64(3), resp.Usage.OutputTokens)
}

func TestCompleteSystemPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))

		system, ok := req["system"].([]any)
		require.True(t, ok)
		require.Len(t, system, 1)
		first, _ := system[0].(map[string]any)
		assert.Equal(t, "be brief", first["text"])

		msgs, _ := req["messages"].([]any)
		require.Len(t, msgs, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_02",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-latest",
			"content": [{"type": "text", "text": "ok"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 6, "output_tokens": 1}
		}`))
	})

	resp, err := client.Complete(context.Background(), proto.Request{
		Model: "claude-3-5-sonnet-latest",
		Messages: []proto.Message{
			{Role: proto.RoleSystem, Content: "be brief"},
			{Role: proto.RoleUser, Content: "Hello there, how are you?"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Content)
}

func TestCompleteNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_03",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-latest",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 4, "output_tokens": 0}
		}`))
	})

	_, err := client.Complete(context.Background(), proto.Request{
		Model: "claude-3-5-sonnet-latest",
		Messages: []proto.Message{
			{Role: proto.RoleUser, Content: "What is up?"},
		},
	})
	require.ErrorIs(t, err, proto.ErrNoContent)
}
