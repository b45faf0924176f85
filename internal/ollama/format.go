package ollama

import (
	"github.com/duetcli/duet/internal/proto"
	"github.com/ollama/ollama/api"
)

func fromProtoMessages(input []proto.Message) []api.Message {
	messages := make([]api.Message, 0, len(input))
	for _, msg := range input {
		messages = append(messages, api.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return messages
}
