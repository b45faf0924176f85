package google

import "github.com/duetcli/duet/internal/proto"

// RoleModel is the role the Gemini API uses for assistant messages.
const RoleModel = "model"

func fromProtoMessages(input []proto.Message) []Content {
	result := make([]Content, 0, len(input))
	for _, in := range input {
		switch in.Role {
		case proto.RoleSystem, proto.RoleUser:
			result = append(result, Content{
				Role:  proto.RoleUser,
				Parts: []Part{{Text: in.Content}},
			})
		case proto.RoleAssistant:
			result = append(result, Content{
				Role:  RoleModel,
				Parts: []Part{{Text: in.Content}},
			})
		}
	}
	return result
}
