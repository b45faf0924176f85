package cohere

import (
	cohere "github.com/cohere-ai/cohere-go/v2"
	"github.com/duetcli/duet/internal/proto"
)

func fromProtoMessages(input []proto.Message) (history []*cohere.Message, message string) {
	messages := make([]*cohere.Message, 0, len(input))
	for _, msg := range input {
		switch msg.Role {
		case proto.RoleSystem:
			messages = append(messages, &cohere.Message{
				Role: "SYSTEM",
				System: &cohere.ChatMessage{
					Message: msg.Content,
				},
			})
		case proto.RoleAssistant:
			messages = append(messages, &cohere.Message{
				Role: "CHATBOT",
				Chatbot: &cohere.ChatMessage{
					Message: msg.Content,
				},
			})
		default:
			messages = append(messages, &cohere.Message{
				Role: "USER",
				User: &cohere.ChatMessage{
					Message: msg.Content,
				},
			})
		}
	}
	if len(messages) == 0 {
		return nil, ""
	}
	if len(messages) > 1 {
		history = messages[:len(messages)-1]
	}
	switch last := messages[len(messages)-1]; last.Role {
	case "SYSTEM":
		message = last.System.Message
	case "CHATBOT":
		message = last.Chatbot.Message
	default:
		message = last.User.Message
	}
	return history, message
}

func toProtoResponse(resp *cohere.NonStreamedChatResponse) proto.Response {
	out := proto.Response{
		Content: resp.Text,
	}
	if resp.FinishReason != nil {
		out.FinishReason = string(*resp.FinishReason)
	}
	if meta := resp.Meta; meta != nil && meta.Tokens != nil {
		if meta.Tokens.InputTokens != nil {
			out.Usage.InputTokens = int64(*meta.Tokens.InputTokens)
		}
		if meta.Tokens.OutputTokens != nil {
			out.Usage.OutputTokens = int64(*meta.Tokens.OutputTokens)
		}
	}
	return out
}
