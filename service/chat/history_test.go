package chat

import (
	"encoding/json"
	"testing"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestNewUserMessageDerivesPartsFromContent(t *testing.T) {
	msg := NewUserMessage("chat-1", request.IncomingMessage{
		Role:    model.RoleUser,
		Content: "hello there",
	})

	assert.Equal(t, "chat-1", msg.ChatID)
	assert.Equal(t, model.RoleUser, msg.Role)
	assert.Equal(t, "hello there", msg.Content)
	require.Len(t, msg.Parts, 1)
	assert.Equal(t, model.PartTypeText, msg.Parts[0].Type)
	assert.Equal(t, "hello there", msg.Parts[0].Text)
}

func TestNewUserMessageDerivesContentFromParts(t *testing.T) {
	msg := NewUserMessage("chat-1", request.IncomingMessage{
		Role: model.RoleUser,
		Parts: []model.Part{
			{Type: model.PartTypeText, Text: "first "},
			{Type: model.PartTypeText, Text: "second"},
		},
	})

	assert.Equal(t, "first second", msg.Content)
	assert.Len(t, msg.Parts, 2)
}

func TestTranslateUserMessageIncludesImageAttachments(t *testing.T) {
	msgs := ToModelMessages([]model.Message{{
		Role:    model.RoleUser,
		Content: "what is in this picture?",
		Attachments: []model.Attachment{
			{URL: "https://example.com/cat.png", ContentType: "image/png"},
			{URL: "https://example.com/notes.pdf", ContentType: "application/pdf"},
		},
	}})

	require.Len(t, msgs, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[0].Role)
	require.Len(t, msgs[0].Parts, 2)
	assert.Equal(t, llms.TextPart("what is in this picture?"), msgs[0].Parts[0])
	assert.Equal(t, llms.ImageURLPart("https://example.com/cat.png"), msgs[0].Parts[1])
}

func TestTranslateAssistantMessageExpandsToolInvocations(t *testing.T) {
	result := &model.ToolResult{Success: true, Data: "it is sunny"}
	msgs := ToModelMessages([]model.Message{{
		Role:    model.RoleAssistant,
		Content: "Let me check.",
		Parts: []model.Part{
			{Type: model.PartTypeText, Text: "Let me check."},
			{Type: model.PartTypeToolInvocation, ToolInvocation: &model.ToolInvocation{
				ID:       "call_1",
				ToolName: ToolWebSearch,
				Args:     json.RawMessage(`{"query":"weather"}`),
				Result:   result,
			}},
		},
	}})

	require.Len(t, msgs, 2)

	assistant := msgs[0]
	assert.Equal(t, llms.ChatMessageTypeAI, assistant.Role)
	require.Len(t, assistant.Parts, 2)
	toolCall, ok := assistant.Parts[1].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "call_1", toolCall.ID)
	assert.Equal(t, ToolWebSearch, toolCall.FunctionCall.Name)

	toolMsg := msgs[1]
	assert.Equal(t, llms.ChatMessageTypeTool, toolMsg.Role)
	require.Len(t, toolMsg.Parts, 1)
	resp, ok := toolMsg.Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call_1", resp.ToolCallID)

	var replayed model.ToolResult
	require.NoError(t, json.Unmarshal([]byte(resp.Content), &replayed))
	assert.Equal(t, *result, replayed)
}

func TestTranslateAssistantMessageSkipsReasoningParts(t *testing.T) {
	msgs := ToModelMessages([]model.Message{{
		Role: model.RoleAssistant,
		Parts: []model.Part{
			{Type: model.PartTypeReasoning, Text: "thinking hard"},
			{Type: model.PartTypeText, Text: "the answer"},
		},
	}})

	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Parts, 1)
	assert.Equal(t, llms.TextPart("the answer"), msgs[0].Parts[0])
}

func TestTranslateAssistantMessageFallsBackToContent(t *testing.T) {
	msgs := ToModelMessages([]model.Message{{
		Role:    model.RoleAssistant,
		Content: "plain reply",
	}})

	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Parts, 1)
	assert.Equal(t, llms.TextPart("plain reply"), msgs[0].Parts[0])
}

func TestRoundTripSurvivesJSONSerialization(t *testing.T) {
	original := model.Message{
		Role:    model.RoleAssistant,
		Content: "done",
		Parts: []model.Part{
			{Type: model.PartTypeReasoning, Text: "reasoning"},
			{Type: model.PartTypeToolInvocation, ToolInvocation: &model.ToolInvocation{
				ID:       "call_9",
				ToolName: ToolWebSearch,
				Args:     json.RawMessage(`{"query":"q"}`),
				Result:   &model.ToolResult{Error: "rate limited"},
			}},
			{Type: model.PartTypeText, Text: "done"},
		},
	}

	// Parts persist as a JSON column; the reloaded row must translate the
	// same way the in-memory one does.
	raw, err := json.Marshal(original.Parts)
	require.NoError(t, err)
	var reloaded model.Message
	reloaded.Role = original.Role
	reloaded.Content = original.Content
	require.NoError(t, json.Unmarshal(raw, &reloaded.Parts))

	assert.Equal(t, ToModelMessages([]model.Message{original}), ToModelMessages([]model.Message{reloaded}))
}
