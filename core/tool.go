package core

import (
	"bytes"
	"context"
	"encoding/json"
	"text/template"
)

// ToolDefinition describes a capability the model may request.
// Definitions are declarative: the same definition can be bound to a local
// handler (NewFuncTool) or routed through an external executor
// (NewExecutorTool).
type ToolDefinition struct {
	// ToolName is the unique identifier the model uses to request this tool.
	ToolName string

	// ToolDescription tells the model what the tool does and when to use it.
	ToolDescription string

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema map[string]interface{}

	// Destructive marks actions that are hard to undo (system shutdown,
	// restart, session termination). Destructive tools are gated behind
	// explicit user confirmation before execution.
	Destructive bool

	// SummaryTemplate renders a human-readable confirmation prompt from the
	// tool input, e.g. "Shut down the system". Supports text/template
	// references into the input map ({{.level}}).
	SummaryTemplate string
}

// ToolParams carries the input for a single tool invocation.
type ToolParams struct {
	// Input is the raw JSON arguments from the model's tool call.
	Input json.RawMessage

	// CallID is the model-assigned id of the tool call being served.
	CallID string

	// RequestID identifies the exchange this invocation belongs to.
	RequestID string
}

// ToolResult is the outcome of a tool invocation.
type ToolResult struct {
	// Success indicates whether the tool accomplished its action.
	Success bool

	// Data holds the tool's output on success. Serialized to JSON when
	// handed back to the model.
	Data interface{}

	// Error holds a human-readable failure description when Success is false.
	Error string
}

// Tool is a named, schema-described capability the dispatch engine can
// execute. Implementations must be safe for sequential reuse across
// exchanges; the engine never invokes a tool concurrently with itself.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}

	// Destructive reports whether this tool requires user confirmation.
	Destructive() bool

	// Summary renders a confirmation prompt for the given input.
	Summary(input json.RawMessage) string

	// Execute runs the tool synchronously. A returned error or a result
	// with Success=false are both captured by the engine as error results;
	// neither aborts the exchange.
	Execute(ctx context.Context, params *ToolParams) (*ToolResult, error)
}

// ToolExecutor routes tool invocations to an external capability backend
// (OS automation, HTTP APIs, vision services). One executor typically
// serves many definitions.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, params *ToolParams) (*ToolResult, error)
}

// definitionTool implements the descriptor half of Tool from a definition.
type definitionTool struct {
	def ToolDefinition
}

func (t *definitionTool) Name() string                        { return t.def.ToolName }
func (t *definitionTool) Description() string                 { return t.def.ToolDescription }
func (t *definitionTool) InputSchema() map[string]interface{} { return t.def.InputSchema }
func (t *definitionTool) Destructive() bool                   { return t.def.Destructive }

// Summary renders the definition's SummaryTemplate against the input JSON.
// Falls back to the tool name when the template is missing or malformed.
func (t *definitionTool) Summary(input json.RawMessage) string {
	if t.def.SummaryTemplate == "" {
		return t.def.ToolName
	}

	tmpl, err := template.New("summary").Parse(t.def.SummaryTemplate)
	if err != nil {
		return t.def.ToolName
	}

	var args map[string]interface{}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return t.def.ToolName
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, args); err != nil {
		return t.def.ToolName
	}
	return buf.String()
}

// ExecutorTool binds a definition to an external executor.
type ExecutorTool struct {
	definitionTool
	executor ToolExecutor
}

// NewExecutorTool creates a Tool that delegates execution to the executor.
func NewExecutorTool(def ToolDefinition, executor ToolExecutor) *ExecutorTool {
	return &ExecutorTool{definitionTool: definitionTool{def: def}, executor: executor}
}

func (t *ExecutorTool) Execute(ctx context.Context, params *ToolParams) (*ToolResult, error) {
	return t.executor.Execute(ctx, t.def.ToolName, params)
}

// ToolFunc is the handler signature for locally implemented tools.
type ToolFunc func(ctx context.Context, params *ToolParams) (*ToolResult, error)

// FuncTool binds a definition to an in-process handler.
type FuncTool struct {
	definitionTool
	fn ToolFunc
}

// NewFuncTool creates a Tool backed by fn.
func NewFuncTool(def ToolDefinition, fn ToolFunc) *FuncTool {
	return &FuncTool{definitionTool: definitionTool{def: def}, fn: fn}
}

func (t *FuncTool) Execute(ctx context.Context, params *ToolParams) (*ToolResult, error) {
	return t.fn(ctx, params)
}

// ToolExecution records one tool invocation for the caller's bookkeeping.
type ToolExecution struct {
	Tool       string
	Input      interface{}
	Result     interface{}
	Error      string
	DurationMs int64
}
