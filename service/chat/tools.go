package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TomarJatin/Ai-Influencer-sub000/model"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools/duckduckgo"
)

const (
	ToolWebSearch = "web_search"

	// Bound on the research sub-agent's internal search/answer rounds.
	maxResearchSteps = 5

	researchMaxResults = 5
	researchUserAgent  = "ai-influencer-studio/1.0"
)

// ToolDefinition is one entry of the closed tool registry: the description
// and parameter schema shown to the model, plus the executor.
type ToolDefinition struct {
	Description string
	Parameters  map[string]any
	Execute     func(ctx context.Context, args string) model.ToolResult
}

// Registry is the fixed set of tools exposed to the chat model. It is built
// once at startup; the model picks a tool by name at generation time.
type Registry struct {
	order []string
	defs  map[string]ToolDefinition
}

// NewRegistry builds the registry. researchLLM is the fixed model used by the
// web_search executor's sub-invocation.
func NewRegistry(researchLLM llms.Model) *Registry {
	r := &Registry{defs: make(map[string]ToolDefinition)}
	r.register(ToolWebSearch, ToolDefinition{
		Description: "Search the web for current information: news, trends, prices, events, or anything that may have changed after your training data.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query. Be specific.",
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, args string) model.ToolResult {
			return runWebSearch(ctx, researchLLM, args)
		},
	})
	return r
}

func (r *Registry) register(name string, def ToolDefinition) {
	r.order = append(r.order, name)
	r.defs[name] = def
}

// Tools returns the registry as model-facing tool declarations, in stable
// registration order.
func (r *Registry) Tools() []llms.Tool {
	out := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

// Execute runs the named tool. Failures, including unknown tool names, are
// reported as model-visible results rather than errors: a broken tool call
// must not abort the outer stream.
func (r *Registry) Execute(ctx context.Context, name, args string) model.ToolResult {
	def, ok := r.defs[name]
	if !ok {
		return model.ToolResult{Error: fmt.Sprintf("unknown tool: %s", name)}
	}
	return def.Execute(ctx, args)
}

// runWebSearch answers a search query with a bounded research sub-agent: the
// fixed research model plus a DuckDuckGo search tool, prompted by the
// research-agent system prompt. The sub-invocation is awaited to completion;
// the outer stream sees a single tool result.
func runWebSearch(ctx context.Context, researchLLM llms.Model, args string) model.ToolResult {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return model.ToolResult{Error: fmt.Sprintf("invalid web_search arguments: %v", err)}
	}
	if strings.TrimSpace(params.Query) == "" {
		return model.ToolResult{Error: "web_search requires a non-empty query"}
	}

	ddg, err := duckduckgo.New(researchMaxResults, researchUserAgent)
	if err != nil {
		return model.ToolResult{Error: fmt.Sprintf("failed to create search client: %v", err)}
	}

	searchDecl := []llms.Tool{{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        "search",
			Description: "Run a web search and return the top results.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search terms.",
					},
				},
				"required": []string{"query"},
			},
		},
	}}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, ResearchAgentPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, params.Query),
	}

	for step := 0; step < maxResearchSteps; step++ {
		resp, err := researchLLM.GenerateContent(ctx, messages, llms.WithTools(searchDecl))
		if err != nil {
			return model.ToolResult{Error: err.Error()}
		}
		if len(resp.Choices) == 0 {
			return model.ToolResult{Error: "research model returned no choices"}
		}

		choice := resp.Choices[0]
		if len(choice.ToolCalls) == 0 {
			return model.ToolResult{Success: true, Data: choice.Content}
		}

		assistantTurn := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			assistantTurn.Parts = append(assistantTurn.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			assistantTurn.Parts = append(assistantTurn.Parts, tc)
		}
		messages = append(messages, assistantTurn)

		for _, tc := range choice.ToolCalls {
			var searchArgs struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal([]byte(tc.FunctionCall.Arguments), &searchArgs); err != nil {
				searchArgs.Query = params.Query
			}

			results, err := ddg.Call(ctx, searchArgs.Query)
			if err != nil {
				results = fmt.Sprintf("search failed: %v", err)
			}

			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: tc.ID,
					Name:       tc.FunctionCall.Name,
					Content:    results,
				}},
			})
		}
	}

	return model.ToolResult{Error: fmt.Sprintf("research agent exceeded %d steps without an answer", maxResearchSteps)}
}
