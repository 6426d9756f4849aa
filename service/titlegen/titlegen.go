// Package titlegen names freshly created chats off their first user message.
// Title generation is best-effort: tasks are dropped when the queue is full
// and failures are logged, never surfaced to the chat turn that enqueued them.
package titlegen

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/service/chat"

	"github.com/tmc/langchaingo/llms"
)

const (
	queueSize    = 64
	workerCount  = 2
	taskTimeout  = 30 * time.Second
	maxTitleRune = 80
)

//go:embed prompts/title.txt
var promptFS embed.FS

var titleTmpl = template.Must(template.ParseFS(promptFS, "prompts/title.txt"))

// TitleStore persists the generated title. *dao.ChatStore satisfies it.
type TitleStore interface {
	UpdateChatTitle(ctx context.Context, email, chatID, title string) error
}

type task struct {
	chatID    string
	userEmail string
	message   string
}

// Generator owns the worker pool behind the title queue.
type Generator struct {
	store   TitleStore
	resolve chat.ResolveFunc
	tasks   chan task
}

func NewGenerator(store TitleStore) *Generator {
	return &Generator{
		store:   store,
		resolve: chat.Resolve,
		tasks:   make(chan task, queueSize),
	}
}

// WithResolver swaps the model resolver. Tests use it to inject fakes.
func (g *Generator) WithResolver(resolve chat.ResolveFunc) *Generator {
	g.resolve = resolve
	return g
}

// Run starts the workers and blocks until ctx is done. The channel is never
// closed so a late Enqueue during shutdown is dropped, not a panic.
func (g *Generator) Run(ctx context.Context) {
	done := make(chan struct{})
	for i := 0; i < workerCount; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-g.tasks:
					g.process(t)
				}
			}
		}()
	}

	for i := 0; i < workerCount; i++ {
		<-done
	}
}

// Enqueue submits a title task without blocking. A full queue drops the task,
// leaving the chat on its default title.
func (g *Generator) Enqueue(chatID, userEmail, message string) {
	select {
	case g.tasks <- task{chatID: chatID, userEmail: userEmail, message: message}:
	default:
		slog.Warn("title queue full, dropping task", "chat_id", chatID)
	}
}

func (g *Generator) process(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	title, err := g.generate(ctx, t.message)
	if err != nil {
		slog.Error("failed to generate chat title", "chat_id", t.chatID, "err", err)
		return
	}

	if err := g.store.UpdateChatTitle(ctx, t.userEmail, t.chatID, title); err != nil {
		slog.Error("failed to save chat title", "chat_id", t.chatID, "err", err)
	}
}

func (g *Generator) generate(ctx context.Context, message string) (string, error) {
	var prompt strings.Builder
	if err := titleTmpl.Execute(&prompt, map[string]string{"Message": message}); err != nil {
		return "", err
	}

	handle, err := g.resolve(ctx, config.Cfg.Model.TitleModel)
	if err != nil {
		return "", err
	}

	resp, err := handle.LLM.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt.String())},
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoTitle
	}

	return parseTitle(resp.Choices[0].Content)
}

var errNoTitle = errors.New("model returned no title")

func parseTitle(raw string) (string, error) {
	var parsed struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return "", err
	}

	title := strings.TrimSpace(strings.Trim(parsed.Title, `"`))
	if title == "" {
		return "", errNoTitle
	}
	if runes := []rune(title); len(runes) > maxTitleRune {
		title = string(runes[:maxTitleRune])
	}
	return title, nil
}
