package cohere

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
		assert.Equal(t, "/v1/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "command-r-plus", req["model"])
		assert.Equal(t, "What is up?", req["message"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "All good!",
			"generation_id": "gen-1",
			"finish_reason": "COMPLETE",
			"meta": {"tokens": {"input_tokens": 4, "output_tokens": 3}}
		}`))
	})

	resp, err := client.Complete(context.Background(), proto.Request{
		Model: "command-r-plus",
		Messages: []proto.Message{
			{Role: proto.RoleUser, Content: "What is up?"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "All good!", resp.Content)
	require.Equal(t, "COMPLETE", resp.FinishReason)
	require.Equal(t, int64(4), resp.Usage.InputTokens)
	require.Equal(t, int64(3), resp.Usage.OutputTokens)
}

func TestCompleteChatHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))

		assert.Equal(t, "Hello there, how are you?", req["message"])
		history, ok := req["chat_history"].([]any)
		require.True(t, ok)
		require.Len(t, history, 2)
		first, _ := history[0].(map[string]any)
		assert.Equal(t, "SYSTEM", first["role"])
		second, _ := history[1].(map[string]any)
		assert.Equal(t, "CHATBOT", second["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "I'm fine, thanks.", "generation_id": "gen-2"}`))
	})

	resp, err := client.Complete(context.Background(), proto.Request{
		Model: "command-r-plus",
		Messages: []proto.Message{
			{Role: proto.RoleSystem, Content: "be nice"},
			{Role: proto.RoleAssistant, Content: "All good!"},
			{Role: proto.RoleUser, Content: "Hello there, how are you?"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "I'm fine, thanks.", resp.Content)
}

func TestFromProtoMessagesSplit(t *testing.T) {
	history, message := fromProtoMessages([]proto.Message{
		{Role: proto.RoleSystem, Content: "be nice"},
		{Role: proto.RoleUser, Content: "What is up?"},
	})
	require.Len(t, history, 1)
	require.Equal(t, "What is up?", message)

	// A trailing assistant turn must not be read through the USER field.
	history, message = fromProtoMessages([]proto.Message{
		{Role: proto.RoleUser, Content: "What is up?"},
		{Role: proto.RoleAssistant, Content: "All good!"},
	})
	require.Len(t, history, 1)
	require.Equal(t, "All good!", message)

	history, message = fromProtoMessages(nil)
	require.Empty(t, history)
	require.Empty(t, message)
}

func TestCompleteNoText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "", "generation_id": "gen-3"}`))
	})

	_, err := client.Complete(context.Background(), proto.Request{
		Model: "command-r-plus",
		Messages: []proto.Message{
			{Role: proto.RoleUser, Content: "What is up?"},
		},
	})
	require.ErrorIs(t, err, proto.ErrNoContent)
}
