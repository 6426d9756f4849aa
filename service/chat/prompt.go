package chat

import (
	"bytes"
	_ "embed"
	"log/slog"
	"text/template"
	"time"
)

var (
	//go:embed prompts/assistant.txt
	assistantPromptText string

	//go:embed prompts/research_agent.txt
	researchPromptText string
)

var (
	assistantPromptTmpl = template.Must(template.New("assistant").Parse(assistantPromptText))
	researchPromptTmpl  = template.Must(template.New("research").Parse(researchPromptText))
)

// AssistantPrompt renders the persona system prompt for one chat turn. It is
// a pure function of the user's display name, the optional influencer persona
// text, and the wall clock.
func AssistantPrompt(userName, persona string) string {
	return renderPrompt(assistantPromptTmpl, struct {
		UserName string
		Persona  string
		Date     string
	}{
		UserName: userName,
		Persona:  persona,
		Date:     time.Now().UTC().Format(time.RFC3339),
	})
}

// ResearchAgentPrompt renders the system prompt for the web-search tool's
// sub-invocation.
func ResearchAgentPrompt() string {
	return renderPrompt(researchPromptTmpl, struct {
		Date string
	}{
		Date: time.Now().UTC().Format(time.RFC3339),
	})
}

func renderPrompt(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Templates are embedded and parsed at init; execution over plain
		// string fields cannot fail in practice.
		slog.Error("failed to render prompt", "template", tmpl.Name(), "err", err)
		return ""
	}
	return buf.String()
}
