package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitModelString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		provider string
		model    string
		wantErr  bool
	}{
		{name: "openai", input: "openai/gpt-4o", provider: "openai", model: "gpt-4o"},
		{name: "nested slash stays in model name", input: "openai/ft/custom", provider: "openai", model: "ft/custom"},
		{name: "no slash", input: "gpt-4o", wantErr: true},
		{name: "empty provider", input: "/gpt-4o", wantErr: true},
		{name: "empty model", input: "openai/", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, model, err := SplitModelString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidModelFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.provider, provider)
			assert.Equal(t, tt.model, model)
		})
	}
}

func TestResolveRejectsBadIdentifiers(t *testing.T) {
	_, err := Resolve(context.Background(), "no-slash")
	assert.ErrorIs(t, err, ErrInvalidModelFormat)

	_, err = Resolve(context.Background(), "mistral/mistral-large")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestTemperatureFor(t *testing.T) {
	assert.Equal(t, 0.5, TemperatureFor("gpt-4o"))
	assert.Equal(t, 0.5, TemperatureFor("claude-3-5-sonnet-latest"))
	assert.Equal(t, float64(1), TemperatureFor("o1"))
	assert.Equal(t, float64(1), TemperatureFor("o1-mini"))
	assert.Equal(t, float64(1), TemperatureFor("o1-preview"))
}

func TestToolsSupported(t *testing.T) {
	assert.True(t, ToolsSupported("gpt-4o"))
	assert.True(t, ToolsSupported("o1"))
	assert.False(t, ToolsSupported("o1-mini"))
}
