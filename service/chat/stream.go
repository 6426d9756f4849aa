package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/tmc/langchaingo/llms"
)

const (
	// Bound on tool-call round-trips within one turn.
	maxModelSteps = 10

	unknownUserName = "Unknown"
)

// TitleQueue receives the fire-and-forget auto-title task. Implementations
// must not block the caller and must swallow their own errors.
type TitleQueue interface {
	Enqueue(chatID, userEmail, message string)
}

// ToolRunner is the closed tool registry as seen by the orchestrator.
type ToolRunner interface {
	Tools() []llms.Tool
	Execute(ctx context.Context, name, args string) model.ToolResult
}

// PersonaFunc looks up the persona text of an owner-scoped influencer.
type PersonaFunc func(ctx context.Context, email string, influencerID uint) (string, error)

// ResolveFunc maps a model identifier to a handle; Resolve in production.
type ResolveFunc func(ctx context.Context, modelString string) (*ModelHandle, error)

// Orchestrator drives one chat turn end to end: validate, persist the user
// message, stream the model's output with tools attached, persist the
// assembled assistant message once the stream has drained.
type Orchestrator struct {
	store    Store
	tools    ToolRunner
	titles   TitleQueue
	personas PersonaFunc
	resolve  ResolveFunc
	locks    *chatLocks
}

func NewOrchestrator(store Store, tools ToolRunner, titles TitleQueue, personas PersonaFunc) *Orchestrator {
	return &Orchestrator{
		store:    store,
		tools:    tools,
		titles:   titles,
		personas: personas,
		resolve:  Resolve,
		locks:    newChatLocks(),
	}
}

// WithResolver swaps the model resolver. Tests use it to inject fakes.
func (o *Orchestrator) WithResolver(resolve ResolveFunc) *Orchestrator {
	o.resolve = resolve
	return o
}

type TurnRequest struct {
	UserEmail string
	UserName  string
	ChatID    string
	Message   request.IncomingMessage
	Model     string
}

// Turn is one validated chat turn, ready to stream.
type Turn struct {
	o            *Orchestrator
	req          TurnRequest
	chat         *model.Chat
	handle       *ModelHandle
	temperature  float64
	toolsEnabled bool
}

// Prepare validates the turn before any streaming commitment: the chat must
// exist and be owned by the caller (dao.ErrChatNotFound passes through), and
// the model identifier must resolve. Nothing is written and nothing is
// streamed here, so callers can still answer with a plain HTTP error.
func (o *Orchestrator) Prepare(ctx context.Context, req TurnRequest) (*Turn, error) {
	chat, err := o.store.GetChat(ctx, req.UserEmail, req.ChatID)
	if err != nil {
		return nil, err
	}

	handle, err := o.resolve(ctx, req.Model)
	if err != nil {
		return nil, err
	}

	return &Turn{
		o:            o,
		req:          req,
		chat:         chat,
		handle:       handle,
		temperature:  TemperatureFor(handle.Name),
		toolsEnabled: o.tools != nil && ToolsSupported(handle.Name),
	}, nil
}

// Run streams the turn into the sink. Events reach the sink in the exact
// order the model and tool layer produce them; the assistant message is
// persisted only after the stream has fully drained. Any error after the
// stream has started becomes a single terminal error event.
func (t *Turn) Run(ctx context.Context, sink EventSink) {
	unlock := t.o.locks.Lock(t.chat.ChatID)
	defer unlock()

	history, err := t.o.store.Messages(ctx, t.chat.ChatID)
	if err != nil {
		t.fail(sink, err)
		return
	}

	// The user's turn is persisted before the model is contacted, so it
	// survives a failed generation.
	userMsg := NewUserMessage(t.chat.ChatID, t.req.Message)
	if err := t.o.store.CreateMessage(ctx, userMsg); err != nil {
		t.fail(sink, err)
		return
	}

	// Auto-title fires on the chat's first message only. The history read
	// above happened under the chat lock, so two racing first turns still
	// enqueue a single task.
	if len(history) == 0 && t.chat.Title == model.DefaultChatTitle && t.o.titles != nil {
		t.o.titles.Enqueue(t.chat.ChatID, t.req.UserEmail, userMsg.Content)
	}

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, t.systemPrompt(ctx)))
	messages = append(messages, ToModelMessages(history)...)
	messages = append(messages, ToModelMessages([]model.Message{*userMsg})...)

	assistant, err := t.generate(ctx, messages, sink)
	if err != nil {
		t.fail(sink, err)
		return
	}

	assistant.ChatID = t.chat.ChatID
	if err := t.o.store.CreateMessage(ctx, assistant); err != nil {
		t.fail(sink, err)
		return
	}

	sink.Close()
}

// generate runs the bounded model/tool loop and assembles the assistant
// message from the produced segments.
func (t *Turn) generate(ctx context.Context, messages []llms.MessageContent, sink EventSink) (*model.Message, error) {
	var parts []model.Part
	var fullText strings.Builder

	baseOpts := []llms.CallOption{llms.WithTemperature(t.temperature)}
	if t.toolsEnabled {
		baseOpts = append(baseOpts, llms.WithTools(t.o.tools.Tools()))
	}

	for step := 0; step < maxModelSteps; step++ {
		smoother := newWordSmoother(func(text string) error {
			return sink.Send(utils.EventTextDelta, TextDeltaEvent{Text: text})
		})

		// Every provider delivers text deltas on the plain streaming
		// callback; anthropic and googleai deliver them nowhere else. The
		// openai client passes the same text chunk to the reasoning callback
		// too, so that callback reads only its reasoning argument.
		opts := append([]llms.CallOption{}, baseOpts...)
		opts = append(opts,
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				return smoother.Write(string(chunk))
			}),
			llms.WithStreamingReasoningFunc(func(ctx context.Context, reasoningChunk, _ []byte) error {
				if len(reasoningChunk) == 0 {
					return nil
				}
				return sink.Send(utils.EventReasoningDelta, ReasoningDeltaEvent{Text: string(reasoningChunk)})
			}),
		)

		resp, err := t.handle.LLM.GenerateContent(ctx, messages, opts...)
		if err != nil {
			return nil, err
		}
		if err := smoother.Flush(); err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("model returned no choices")
		}

		choice := resp.Choices[0]
		if choice.ReasoningContent != "" {
			parts = append(parts, model.Part{Type: model.PartTypeReasoning, Text: choice.ReasoningContent})
		}
		if choice.Content != "" {
			parts = append(parts, model.Part{Type: model.PartTypeText, Text: choice.Content})
			fullText.WriteString(choice.Content)
		}

		if len(choice.ToolCalls) == 0 {
			break
		}

		// The tool-call turn goes back into the context so the model sees
		// its own calls next step.
		assistantTurn := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			assistantTurn.Parts = append(assistantTurn.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			assistantTurn.Parts = append(assistantTurn.Parts, tc)
		}
		messages = append(messages, assistantTurn)

		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}

			if err := sink.Send(utils.EventToolCall, ToolCallEvent{
				ID:   tc.ID,
				Name: tc.FunctionCall.Name,
				Args: json.RawMessage(tc.FunctionCall.Arguments),
			}); err != nil {
				return nil, err
			}

			result := t.o.tools.Execute(ctx, tc.FunctionCall.Name, tc.FunctionCall.Arguments)

			if err := sink.Send(utils.EventToolResult, ToolResultEvent{
				ID:     tc.ID,
				Name:   tc.FunctionCall.Name,
				Result: result,
			}); err != nil {
				return nil, err
			}

			invocation := result
			parts = append(parts, model.Part{
				Type: model.PartTypeToolInvocation,
				ToolInvocation: &model.ToolInvocation{
					ID:       tc.ID,
					ToolName: tc.FunctionCall.Name,
					Args:     json.RawMessage(tc.FunctionCall.Arguments),
					Result:   &invocation,
				},
			})

			payload, _ := json.Marshal(result)
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: tc.ID,
					Name:       tc.FunctionCall.Name,
					Content:    string(payload),
				}},
			})
		}
	}

	return &model.Message{
		Role:    model.RoleAssistant,
		Content: fullText.String(),
		Parts:   parts,
	}, nil
}

func (t *Turn) systemPrompt(ctx context.Context) string {
	name := t.req.UserName
	if name == "" {
		name = unknownUserName
	}

	persona := ""
	if t.chat.InfluencerID != nil && t.o.personas != nil {
		p, err := t.o.personas(ctx, t.req.UserEmail, *t.chat.InfluencerID)
		if err != nil {
			slog.Warn("failed to load influencer persona",
				"chat_id", t.chat.ChatID,
				"influencer_id", *t.chat.InfluencerID,
				"err", err)
		} else {
			persona = p
		}
	}

	return AssistantPrompt(name, persona)
}

func (t *Turn) fail(sink EventSink, err error) {
	slog.Error("chat turn failed",
		"chat_id", t.chat.ChatID,
		"model", t.handle.Provider+"/"+t.handle.Name,
		"err", err)
	sink.CloseWithError(err.Error())
}
