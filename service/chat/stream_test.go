package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/model"
	"github.com/TomarJatin/Ai-Influencer-sub000/request"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeStore struct {
	chat     *model.Chat
	history  []model.Message
	created  []*model.Message
	chatErr  error
	writeErr error
}

func (s *fakeStore) GetChat(ctx context.Context, email, chatID string) (*model.Chat, error) {
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	return s.chat, nil
}

func (s *fakeStore) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	return s.history, nil
}

func (s *fakeStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.created = append(s.created, msg)
	s.history = append(s.history, *msg)
	return nil
}

type sinkEvent struct {
	event string
	data  any
}

type fakeSink struct {
	events []sinkEvent
}

func (s *fakeSink) Send(event string, data any) error {
	s.events = append(s.events, sinkEvent{event: event, data: data})
	return nil
}

func (s *fakeSink) Close() {
	s.events = append(s.events, sinkEvent{event: utils.EventDone})
}

func (s *fakeSink) CloseWithError(message string) {
	s.events = append(s.events, sinkEvent{event: utils.EventError, data: message})
	s.events = append(s.events, sinkEvent{event: utils.EventDone})
}

func (s *fakeSink) eventNames() []string {
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.event)
	}
	return names
}

func (s *fakeSink) textDeltas() []string {
	var texts []string
	for _, e := range s.events {
		if e.event == utils.EventTextDelta {
			texts = append(texts, e.data.(TextDeltaEvent).Text)
		}
	}
	return texts
}

type fakeTools struct {
	result model.ToolResult
	calls  []string
}

func (f *fakeTools) Tools() []llms.Tool {
	return []llms.Tool{{
		Type:     "function",
		Function: &llms.FunctionDefinition{Name: ToolWebSearch},
	}}
}

func (f *fakeTools) Execute(ctx context.Context, name, args string) model.ToolResult {
	f.calls = append(f.calls, name)
	return f.result
}

type fakeTitles struct {
	enqueued []string
}

func (f *fakeTitles) Enqueue(chatID, userEmail, message string) {
	f.enqueued = append(f.enqueued, chatID)
}

// fakeModel replays scripted responses, streaming each step's chunks through
// the callbacks the way the real providers do: text on the plain streaming
// callback, reasoning on the reasoning callback. mirrorText reproduces the
// openai client, which hands the text chunk to both callbacks.
type fakeModel struct {
	responses  []*llms.ContentResponse
	streams    [][2]string // per step: reasoning chunk, text chunk
	mirrorText bool
	err        error
	calls      [][]llms.MessageContent
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	step := len(m.calls)
	m.calls = append(m.calls, messages)

	if m.err != nil {
		return nil, m.err
	}

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	if step < len(m.streams) {
		if reasoning := m.streams[step][0]; reasoning != "" && opts.StreamingReasoningFunc != nil {
			if err := opts.StreamingReasoningFunc(ctx, []byte(reasoning), nil); err != nil {
				return nil, err
			}
		}
		if text := m.streams[step][1]; text != "" {
			if opts.StreamingFunc != nil {
				if err := opts.StreamingFunc(ctx, []byte(text)); err != nil {
					return nil, err
				}
			}
			if m.mirrorText && opts.StreamingReasoningFunc != nil {
				if err := opts.StreamingReasoningFunc(ctx, nil, []byte(text)); err != nil {
					return nil, err
				}
			}
		}
	}

	return m.responses[step], nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func newTestTurn(t *testing.T, store *fakeStore, tools ToolRunner, titles TitleQueue, llm llms.Model) *Turn {
	t.Helper()

	o := NewOrchestrator(store, tools, titles, nil).WithResolver(
		func(ctx context.Context, modelString string) (*ModelHandle, error) {
			return &ModelHandle{Provider: "openai", Name: "gpt-4o", LLM: llm}, nil
		})

	turn, err := o.Prepare(context.Background(), TurnRequest{
		UserEmail: "a@b.c",
		UserName:  "Alice",
		ChatID:    store.chat.ChatID,
		Message:   request.IncomingMessage{Role: model.RoleUser, Content: "hi"},
		Model:     "openai/gpt-4o",
	})
	require.NoError(t, err)
	return turn
}

func testChat(title string) *model.Chat {
	return &model.Chat{ChatID: "chat-1", UserEmail: "a@b.c", Title: title}
}

func TestPreparePassesThroughChatNotFound(t *testing.T) {
	store := &fakeStore{chatErr: dao.ErrChatNotFound}
	o := NewOrchestrator(store, nil, nil, nil)

	_, err := o.Prepare(context.Background(), TurnRequest{ChatID: "missing", Model: "openai/gpt-4o"})
	assert.ErrorIs(t, err, dao.ErrChatNotFound)
}

func TestPrepareRejectsBadModelBeforeStreaming(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	o := NewOrchestrator(store, nil, nil, nil)

	_, err := o.Prepare(context.Background(), TurnRequest{ChatID: "chat-1", Model: "no-slash"})
	assert.ErrorIs(t, err, ErrInvalidModelFormat)

	_, err = o.Prepare(context.Background(), TurnRequest{ChatID: "chat-1", Model: "mistral/large"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	assert.Empty(t, store.created)
}

func TestRunStreamsTextAndPersistsBothTurns(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	llm := &fakeModel{
		streams: [][2]string{{"", "Hello world "}},
		responses: []*llms.ContentResponse{{
			Choices: []*llms.ContentChoice{{Content: "Hello world"}},
		}},
	}
	sink := &fakeSink{}

	newTestTurn(t, store, nil, nil, llm).Run(context.Background(), sink)

	assert.Equal(t, []string{utils.EventTextDelta, utils.EventDone}, sink.eventNames())

	require.Len(t, store.created, 2)
	assert.Equal(t, model.RoleUser, store.created[0].Role)
	assert.Equal(t, "hi", store.created[0].Content)
	assert.Equal(t, model.RoleAssistant, store.created[1].Role)
	assert.Equal(t, "Hello world", store.created[1].Content)
	assert.Equal(t, "chat-1", store.created[1].ChatID)
}

func TestRunEmitsEachTextChunkOnce(t *testing.T) {
	// The openai client hands every text chunk to both streaming callbacks;
	// only one of them may forward it to the client.
	store := &fakeStore{chat: testChat("Existing")}
	llm := &fakeModel{
		mirrorText: true,
		streams:    [][2]string{{"", "Hello world "}},
		responses: []*llms.ContentResponse{{
			Choices: []*llms.ContentChoice{{Content: "Hello world"}},
		}},
	}
	sink := &fakeSink{}

	newTestTurn(t, store, nil, nil, llm).Run(context.Background(), sink)

	assert.Equal(t, []string{"Hello world "}, sink.textDeltas())
}

func TestRunToolLoopEventOrder(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	tools := &fakeTools{result: model.ToolResult{Success: true, Data: "sunny, 21C"}}
	llm := &fakeModel{
		streams: [][2]string{{"", ""}, {"", "It is sunny. "}},
		responses: []*llms.ContentResponse{
			{Choices: []*llms.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					ID:   "call_1",
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      ToolWebSearch,
						Arguments: `{"query":"weather"}`,
					},
				}},
			}}},
			{Choices: []*llms.ContentChoice{{Content: "It is sunny."}}},
		},
	}
	sink := &fakeSink{}

	newTestTurn(t, store, tools, nil, llm).Run(context.Background(), sink)

	assert.Equal(t, []string{
		utils.EventToolCall,
		utils.EventToolResult,
		utils.EventTextDelta,
		utils.EventDone,
	}, sink.eventNames())
	assert.Equal(t, []string{ToolWebSearch}, tools.calls)

	// The second model call must see the tool round-trip.
	require.Len(t, llm.calls, 2)
	second := llm.calls[1]
	assert.Equal(t, llms.ChatMessageTypeAI, second[len(second)-2].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, second[len(second)-1].Role)

	require.Len(t, store.created, 2)
	assistant := store.created[1]
	require.Len(t, assistant.Parts, 2)
	assert.Equal(t, model.PartTypeToolInvocation, assistant.Parts[0].Type)
	assert.Equal(t, "call_1", assistant.Parts[0].ToolInvocation.ID)
	require.NotNil(t, assistant.Parts[0].ToolInvocation.Result)
	assert.Equal(t, "sunny, 21C", assistant.Parts[0].ToolInvocation.Result.Data)
	assert.Equal(t, model.PartTypeText, assistant.Parts[1].Type)
}

func TestRunToolFailureIsContained(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	tools := &fakeTools{result: model.ToolResult{Error: "search backend down"}}
	llm := &fakeModel{
		streams: [][2]string{{"", ""}, {"", "I could not check. "}},
		responses: []*llms.ContentResponse{
			{Choices: []*llms.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					ID:   "call_1",
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      ToolWebSearch,
						Arguments: `{"query":"weather"}`,
					},
				}},
			}}},
			{Choices: []*llms.ContentChoice{{Content: "I could not check."}}},
		},
	}
	sink := &fakeSink{}

	newTestTurn(t, store, tools, nil, llm).Run(context.Background(), sink)

	// The failed tool shows up as a result event, never as a stream error.
	assert.NotContains(t, sink.eventNames(), utils.EventError)
	assert.Contains(t, sink.eventNames(), utils.EventToolResult)
	require.Len(t, store.created, 2)
}

func TestRunProviderFailureKeepsUserTurnOnly(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	llm := &fakeModel{err: errors.New("upstream 500")}
	sink := &fakeSink{}

	newTestTurn(t, store, nil, nil, llm).Run(context.Background(), sink)

	assert.Equal(t, []string{utils.EventError, utils.EventDone}, sink.eventNames())
	assert.Equal(t, "upstream 500", sink.events[0].data)

	require.Len(t, store.created, 1)
	assert.Equal(t, model.RoleUser, store.created[0].Role)
}

func TestRunStreamsReasoningDeltas(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	llm := &fakeModel{
		streams: [][2]string{{"thinking...", "The answer "}},
		responses: []*llms.ContentResponse{{
			Choices: []*llms.ContentChoice{{
				Content:          "The answer",
				ReasoningContent: "thinking...",
			}},
		}},
	}
	sink := &fakeSink{}

	newTestTurn(t, store, nil, nil, llm).Run(context.Background(), sink)

	assert.Equal(t, []string{
		utils.EventReasoningDelta,
		utils.EventTextDelta,
		utils.EventDone,
	}, sink.eventNames())

	require.Len(t, store.created, 2)
	parts := store.created[1].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, model.PartTypeReasoning, parts[0].Type)
	assert.Equal(t, "thinking...", parts[0].Text)
}

func TestRunEnqueuesTitleOnlyForDefaultTitle(t *testing.T) {
	llmFor := func() *fakeModel {
		return &fakeModel{
			streams: [][2]string{{"", "ok "}},
			responses: []*llms.ContentResponse{{
				Choices: []*llms.ContentChoice{{Content: "ok"}},
			}},
		}
	}

	store := &fakeStore{chat: testChat(model.DefaultChatTitle)}
	titles := &fakeTitles{}
	newTestTurn(t, store, nil, titles, llmFor()).Run(context.Background(), &fakeSink{})
	assert.Equal(t, []string{"chat-1"}, titles.enqueued)

	store = &fakeStore{chat: testChat("Already titled")}
	titles = &fakeTitles{}
	newTestTurn(t, store, nil, titles, llmFor()).Run(context.Background(), &fakeSink{})
	assert.Empty(t, titles.enqueued)
}

func TestRunEnqueuesTitleOncePerChat(t *testing.T) {
	llmFor := func() *fakeModel {
		return &fakeModel{
			streams: [][2]string{{"", "ok "}},
			responses: []*llms.ContentResponse{{
				Choices: []*llms.ContentChoice{{Content: "ok"}},
			}},
		}
	}

	store := &fakeStore{chat: testChat(model.DefaultChatTitle)}
	titles := &fakeTitles{}

	newTestTurn(t, store, nil, titles, llmFor()).Run(context.Background(), &fakeSink{})
	// The async worker has not retitled the chat when the second turn lands,
	// so the title is still the default; only the first turn may enqueue.
	newTestTurn(t, store, nil, titles, llmFor()).Run(context.Background(), &fakeSink{})

	assert.Equal(t, []string{"chat-1"}, titles.enqueued)
}

func TestRunToolIneligibleModelOmitsTools(t *testing.T) {
	store := &fakeStore{chat: testChat("Existing")}
	tools := &fakeTools{}
	llm := &fakeModel{
		streams: [][2]string{{"", "plain "}},
		responses: []*llms.ContentResponse{{
			Choices: []*llms.ContentChoice{{Content: "plain"}},
		}},
	}

	o := NewOrchestrator(store, tools, nil, nil).WithResolver(
		func(ctx context.Context, modelString string) (*ModelHandle, error) {
			return &ModelHandle{Provider: "openai", Name: "o1-mini", LLM: llm}, nil
		})

	turn, err := o.Prepare(context.Background(), TurnRequest{
		UserEmail: "a@b.c",
		ChatID:    "chat-1",
		Message:   request.IncomingMessage{Role: model.RoleUser, Content: "hi"},
		Model:     "openai/o1-mini",
	})
	require.NoError(t, err)
	assert.False(t, turn.toolsEnabled)
	assert.Equal(t, float64(1), turn.temperature)

	turn.Run(context.Background(), &fakeSink{})
	assert.Empty(t, tools.calls)
}
