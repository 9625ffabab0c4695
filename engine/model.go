package engine

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/auralabs/aura-go-sdk/core"
)

// ModelRequest is one model invocation: system prompt, conversation so
// far, and the tools the model may request.
type ModelRequest struct {
	System    string
	Messages  []core.Message
	Tools     []core.ToolDefinition
	MaxTokens int64
}

// ModelResponse is the model's reply: free text plus zero or more tool
// call requests, in the order the model emitted them.
type ModelResponse struct {
	Text      string
	ToolCalls []core.ToolCall
}

// Model is the inference boundary. Implementations: AnthropicModel
// (production), test fakes.
type Model interface {
	Invoke(ctx context.Context, req *ModelRequest) (*ModelResponse, error)
}

// AnthropicModel implements Model on the Anthropic Messages API.
type AnthropicModel struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicModel creates a Model backed by the given client. An empty
// model name selects the default.
func NewAnthropicModel(client *anthropic.Client, model string) *AnthropicModel {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &AnthropicModel{client: client, model: anthropic.Model(model)}
}

// Invoke calls the Messages API and flattens the response blocks.
func (m *AnthropicModel) Invoke(ctx context.Context, req *ModelRequest) (*ModelResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: maxTokens,
		Messages:  toAnthropicMessages(req.Messages),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
	}
	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	out := &ModelResponse{}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			out.Text += block.Text
		case "tool_use":
			out.ToolCalls = append(out.ToolCalls, core.ToolCall{
				ID:    block.ID,
				Name:  block.Name,
				Input: block.Input,
			})
		}
	}
	return out, nil
}

func toAnthropicMessages(messages []core.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Blocks))
		for _, block := range msg.Blocks {
			switch block.Type {
			case core.BlockText:
				blocks = append(blocks, anthropic.NewTextBlock(block.Text))
			case core.BlockToolUse:
				blocks = append(blocks, anthropic.NewToolUseBlock(block.CallID, block.Input, block.Name))
			case core.BlockToolResult:
				blocks = append(blocks, anthropic.NewToolResultBlock(block.CallID, block.Text, block.IsError))
			}
		}
		if msg.Role == core.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		} else {
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}
	return out
}

func toAnthropicTools(defs []core.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		tool := anthropic.ToolParam{
			Name:        def.ToolName,
			Description: anthropic.String(def.ToolDescription),
			InputSchema: toAnthropicSchema(def.InputSchema),
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return out
}

func toAnthropicSchema(schema map[string]interface{}) anthropic.ToolInputSchemaParam {
	var param anthropic.ToolInputSchemaParam
	if schema == nil {
		return param
	}
	if props, ok := schema["properties"]; ok {
		param.Properties = props
	}
	if required, ok := schema["required"].([]string); ok {
		param.Required = required
	}
	return param
}
