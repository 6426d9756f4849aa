package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssistantPromptContainsNameAndDate(t *testing.T) {
	prompt := AssistantPrompt("Alice", "")

	assert.Contains(t, prompt, "Alice")
	assert.Contains(t, prompt, time.Now().UTC().Format("2006-01-02"))
	assert.NotContains(t, prompt, "Persona:")
}

func TestAssistantPromptIncludesPersonaBlock(t *testing.T) {
	prompt := AssistantPrompt("Bob", "Luna, a night-owl gaming streamer.")

	assert.Contains(t, prompt, "Persona:")
	assert.Contains(t, prompt, "Luna, a night-owl gaming streamer.")
}

func TestResearchAgentPromptContainsDate(t *testing.T) {
	prompt := ResearchAgentPrompt()

	assert.Contains(t, prompt, "research agent")
	assert.Contains(t, prompt, time.Now().UTC().Format("2006-01-02"))
}
