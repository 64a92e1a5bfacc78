package main

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed prompts/workflows/*.md
var workflowFS embed.FS

// promptDef defines a prompt's metadata and its embedded workflow file.
type promptDef struct {
	prompt   *mcp.Prompt
	workflow string   // filename under prompts/workflows/
	argNames []string // argument names used as $UPPER_SNAKE placeholders in workflow text
}

var promptDefs = []promptDef{
	{
		prompt: &mcp.Prompt{
			Name:        "incident-investigation",
			Title:       "Incident Investigation",
			Description: "Investigate a production incident across traces, logs and metrics: error rate spikes, availability drops, failed requests, or alert follow-up.",
			Arguments: []*mcp.PromptArgument{
				{Name: "service_name", Description: "Name of the affected service", Required: false},
				{Name: "time_range", Description: "Lookback window, e.g. 30m or 2h", Required: false},
			},
		},
		workflow: "incident-investigation.md",
		argNames: []string{"service_name", "time_range"},
	},
	{
		prompt: &mcp.Prompt{
			Name:        "latency-analysis",
			Title:       "Latency Analysis",
			Description: "Analyze slow requests for a service: find high-latency traces, break down per-operation timing, and correlate with logs and response-time metrics.",
			Arguments: []*mcp.PromptArgument{
				{Name: "service_name", Description: "Name of the affected service", Required: false},
				{Name: "min_duration", Description: "Minimum trace duration to look at, e.g. 500ms", Required: false},
			},
		},
		workflow: "latency-analysis.md",
		argNames: []string{"service_name", "min_duration"},
	},
}

// registerAllPrompts registers the investigation workflow prompts.
func registerAllPrompts(server *mcp.Server) {
	for _, def := range promptDefs {
		server.AddPrompt(def.prompt, makePromptHandler(def))
	}
}

// makePromptHandler returns a handler that reads the embedded workflow file
// and substitutes any provided argument placeholders.
func makePromptHandler(def promptDef) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content, err := workflowFS.ReadFile("prompts/workflows/" + def.workflow)
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow %s: %w", def.workflow, err)
		}

		workflow := substituteArgs(string(content), req.Params.Arguments, def.argNames)

		return &mcp.GetPromptResult{
			Description: def.prompt.Description,
			Messages: []*mcp.PromptMessage{
				{
					Role:    mcp.Role("user"),
					Content: &mcp.TextContent{Text: workflow},
				},
			},
		}, nil
	}
}

// substituteArgs replaces $UPPER_SNAKE placeholders in text with argument
// values. Placeholders for missing arguments are left as-is so the agent can
// fill them in.
func substituteArgs(text string, args map[string]string, argNames []string) string {
	for _, name := range argNames {
		val, ok := args[name]
		if !ok || val == "" {
			continue
		}
		placeholder := "$" + strings.ToUpper(name)
		text = strings.ReplaceAll(text, placeholder, val)
	}
	return text
}
