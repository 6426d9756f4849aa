package titlegen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type titleUpdate struct {
	chatID string
	title  string
}

type fakeTitleStore struct {
	updates chan titleUpdate
}

func (s *fakeTitleStore) UpdateChatTitle(ctx context.Context, email, chatID, title string) error {
	s.updates <- titleUpdate{chatID: chatID, title: title}
	return nil
}

type fakeTitleModel struct {
	content string
	err     error
}

func (m *fakeTitleModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.content}},
	}, nil
}

func (m *fakeTitleModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func resolverFor(m llms.Model) chat.ResolveFunc {
	return func(ctx context.Context, modelString string) (*chat.ModelHandle, error) {
		return &chat.ModelHandle{Provider: "openai", Name: "gpt-4o-mini", LLM: m}, nil
	}
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: `{"title": "Weekend Trip Planning"}`, want: "Weekend Trip Planning"},
		{name: "surrounding whitespace", raw: "  {\"title\": \"Caption Ideas\"}\n", want: "Caption Ideas"},
		{name: "stray quotes stripped", raw: `{"title": "\"Launch Plan\""}`, want: "Launch Plan"},
		{name: "empty title", raw: `{"title": ""}`, wantErr: true},
		{name: "not json", raw: "Launch Plan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTitle(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTitleTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got, err := parseTitle(`{"title": "` + long + `"}`)
	require.NoError(t, err)
	assert.Len(t, []rune(got), maxTitleRune)
}

func TestGeneratorSavesTitle(t *testing.T) {
	config.Cfg = &config.Config{}

	store := &fakeTitleStore{updates: make(chan titleUpdate, 1)}
	g := NewGenerator(store).WithResolver(resolverFor(&fakeTitleModel{
		content: `{"title": "Weekend Trip Planning"}`,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.Run(ctx)

	g.Enqueue("chat-1", "a@b.c", "help me plan a weekend trip")

	select {
	case update := <-store.updates:
		assert.Equal(t, "chat-1", update.chatID)
		assert.Equal(t, "Weekend Trip Planning", update.title)
	case <-time.After(2 * time.Second):
		t.Fatal("title was never saved")
	}
}

func TestGeneratorSwallowsModelFailure(t *testing.T) {
	config.Cfg = &config.Config{}

	store := &fakeTitleStore{updates: make(chan titleUpdate, 1)}
	g := NewGenerator(store).WithResolver(resolverFor(&fakeTitleModel{
		err: errors.New("upstream 500"),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.Run(ctx)

	g.Enqueue("chat-1", "a@b.c", "hello")

	select {
	case <-store.updates:
		t.Fatal("failed generation must not update the title")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEnqueueDropsWhenQueueIsFull(t *testing.T) {
	// No workers running, so the buffer fills and the overflow is dropped
	// without blocking the caller.
	g := NewGenerator(&fakeTitleStore{updates: make(chan titleUpdate)})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < queueSize+10; i++ {
			g.Enqueue("chat-1", "a@b.c", "msg")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
