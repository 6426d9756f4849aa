package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"

	"github.com/tmc/langchaingo/llms"
)

// Store is the persistence collaborator the orchestrator depends on.
// *dao.ChatStore satisfies it in production; tests inject fakes.
type Store interface {
	GetChat(ctx context.Context, email, chatID string) (*model.Chat, error)
	Messages(ctx context.Context, chatID string) ([]model.Message, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
}

// NewUserMessage normalizes an incoming user turn into a Message row. Content
// and parts are kept consistent: missing parts are derived from content, and
// missing content is derived from the text parts.
func NewUserMessage(chatID string, in request.IncomingMessage) *model.Message {
	parts := in.Parts
	if len(parts) == 0 && in.Content != "" {
		parts = []model.Part{{Type: model.PartTypeText, Text: in.Content}}
	}

	content := in.Content
	if content == "" {
		content = joinTextParts(parts)
	}

	return &model.Message{
		ChatID:      chatID,
		Role:        model.RoleUser,
		Content:     content,
		Parts:       parts,
		Attachments: in.Attachments,
	}
}

func joinTextParts(parts []model.Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Type == model.PartTypeText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// ToModelMessages translates stored history into the model-interaction
// representation. Text and tool-invocation segments replay fully; reasoning
// segments are persisted for clients but not re-sent to providers, which do
// not accept reasoning as input.
func ToModelMessages(msgs []model.Message) []llms.MessageContent {
	var out []llms.MessageContent
	for _, m := range msgs {
		out = append(out, translateMessage(m)...)
	}
	return out
}

func translateMessage(m model.Message) []llms.MessageContent {
	switch m.Role {
	case model.RoleSystem:
		return []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, m.Content)}
	case model.RoleUser:
		return []llms.MessageContent{translateUserMessage(m)}
	case model.RoleAssistant:
		return translateAssistantMessage(m)
	default:
		return nil
	}
}

func translateUserMessage(m model.Message) llms.MessageContent {
	msg := llms.MessageContent{Role: llms.ChatMessageTypeHuman}

	if len(m.Parts) == 0 && m.Content != "" {
		msg.Parts = append(msg.Parts, llms.TextPart(m.Content))
	}
	for _, p := range m.Parts {
		if p.Type == model.PartTypeText && p.Text != "" {
			msg.Parts = append(msg.Parts, llms.TextPart(p.Text))
		}
	}
	for _, a := range m.Attachments {
		if strings.HasPrefix(a.ContentType, "image/") {
			msg.Parts = append(msg.Parts, llms.ImageURLPart(a.URL))
		}
	}

	return msg
}

// translateAssistantMessage expands one stored assistant turn into the
// assistant message (text + tool calls) followed by the tool-result messages,
// preserving the order the parts were produced in.
func translateAssistantMessage(m model.Message) []llms.MessageContent {
	assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	var toolResponses []llms.MessageContent

	for _, p := range m.Parts {
		switch p.Type {
		case model.PartTypeText:
			if p.Text != "" {
				assistant.Parts = append(assistant.Parts, llms.TextPart(p.Text))
			}
		case model.PartTypeToolInvocation:
			if p.ToolInvocation == nil {
				continue
			}
			inv := p.ToolInvocation
			assistant.Parts = append(assistant.Parts, llms.ToolCall{
				ID:   inv.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      inv.ToolName,
					Arguments: string(inv.Args),
				},
			})
			if inv.Result != nil {
				payload, _ := json.Marshal(inv.Result)
				toolResponses = append(toolResponses, llms.MessageContent{
					Role: llms.ChatMessageTypeTool,
					Parts: []llms.ContentPart{llms.ToolCallResponse{
						ToolCallID: inv.ID,
						Name:       inv.ToolName,
						Content:    string(payload),
					}},
				})
			}
		}
	}

	if len(assistant.Parts) == 0 && m.Content != "" {
		assistant.Parts = append(assistant.Parts, llms.TextPart(m.Content))
	}

	out := make([]llms.MessageContent, 0, 1+len(toolResponses))
	if len(assistant.Parts) > 0 {
		out = append(out, assistant)
	}
	return append(out, toolResponses...)
}
