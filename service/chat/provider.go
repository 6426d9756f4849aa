package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	ErrInvalidModelFormat  = errors.New("model must be in \"provider/model-name\" format")
	ErrUnsupportedProvider = errors.New("unsupported model provider")
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

const (
	// Reasoning-series models reject any temperature other than 1.
	reasoningModelMarker = "o1"

	// The one chat model variant without tool-calling support.
	toolIncompatibleModel = "o1-mini"

	defaultTemperature = 0.5
)

// Streaming completions can run for minutes.
var llmHTTPClient *http.Client = utils.NewHTTPClient(
	utils.WithTimeout(300 * time.Second),
)

// ModelHandle is a lazily constructed language-model client tagged with the
// provider key and model name it was resolved from.
type ModelHandle struct {
	Provider string
	Name     string
	LLM      llms.Model
}

// SplitModelString splits "<provider>/<model-name>" on the first slash. Both
// segments must be non-empty. The name segment may itself contain slashes
// (fine-tune and hosted-model identifiers do); everything after the first
// slash is the model name.
func SplitModelString(modelString string) (provider, name string, err error) {
	provider, name, ok := strings.Cut(modelString, "/")
	if !ok || provider == "" || name == "" {
		return "", "", ErrInvalidModelFormat
	}
	return provider, name, nil
}

// Resolve maps a "<provider>/<model-name>" identifier to a model handle. The
// provider key is matched case-insensitively against the closed supported
// set; the model name is passed through verbatim. No network traffic happens
// here: the handle is only a configured client.
func Resolve(ctx context.Context, modelString string) (*ModelHandle, error) {
	provider, name, err := SplitModelString(modelString)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(provider)
	var llm llms.Model
	switch key {
	case ProviderOpenAI:
		opts := []openai.Option{
			openai.WithModel(name),
			openai.WithToken(config.Cfg.Providers.OpenAI.APIKey),
			openai.WithHTTPClient(llmHTTPClient),
		}
		if baseURL := config.Cfg.Providers.OpenAI.BaseURL; baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		llm, err = openai.New(opts...)
	case ProviderAnthropic:
		llm, err = anthropic.New(
			anthropic.WithModel(name),
			anthropic.WithToken(config.Cfg.Providers.Anthropic.APIKey),
			anthropic.WithHTTPClient(llmHTTPClient),
		)
	case ProviderGoogle:
		llm, err = googleai.New(ctx,
			googleai.WithAPIKey(config.Cfg.Providers.Google.APIKey),
			googleai.WithDefaultModel(name),
		)
	default:
		return nil, ErrUnsupportedProvider
	}
	if err != nil {
		return nil, err
	}

	return &ModelHandle{Provider: key, Name: name, LLM: llm}, nil
}

// TemperatureFor returns the fixed per-model temperature override.
func TemperatureFor(modelName string) float64 {
	if strings.Contains(modelName, reasoningModelMarker) {
		return 1
	}
	return defaultTemperature
}

// ToolsSupported reports whether the model accepts a tools block.
func ToolsSupported(modelName string) bool {
	return modelName != toolIncompatibleModel
}
