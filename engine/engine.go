// Package engine turns model tool-call requests into validated, gated,
// executed actions and a final answer.
//
// One Engine.Run call processes one exchange end-to-end: retrieve memory
// context, invoke the model, execute any requested tools strictly in
// emission order, re-invoke the model with the results, and store the
// final answer back into memory. Per-request failures are isolated; a
// total model failure surfaces as one generic apology and leaves memory
// untouched.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auralabs/aura-go-sdk/core"
	"github.com/auralabs/aura-go-sdk/memory"
)

// Memory is the conversational context the engine reads and writes.
// memory.Manager implements it.
type Memory interface {
	// History returns the recent session turns as prompt text.
	History(maxMessages int) string

	// RelevantContext returns semantically relevant past exchanges.
	RelevantContext(ctx context.Context, query string, k int) memory.ContextResult

	// AddMessage records one completed exchange.
	AddMessage(ctx context.Context, userText, assistantText string)
}

// Config holds engine tunables.
type Config struct {
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string

	// HistoryTurns is how many recent turns to inject. Default: 10.
	HistoryTurns int

	// ContextK is how many semantic matches to inject. Default: 3.
	ContextK int

	// MaxTokens caps each model response. Default: 4096.
	MaxTokens int64
}

// Engine is the tool dispatch engine.
type Engine struct {
	model     Model
	registry  *ToolRegistry
	memory    Memory
	confirmer Confirmer
	config    Config
}

// Option configures the engine.
type Option func(*Engine)

// WithMemory attaches a conversational memory manager.
func WithMemory(m Memory) Option {
	return func(e *Engine) { e.memory = m }
}

// WithConfirmer sets the confirmation channel for destructive tools.
// Without one, every destructive call is skipped.
func WithConfirmer(c Confirmer) Option {
	return func(e *Engine) { e.confirmer = c }
}

// WithConfig overrides the default tunables.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// NewEngine creates an engine over the given model and registry.
func NewEngine(model Model, registry *ToolRegistry, opts ...Option) *Engine {
	e := &Engine{
		model:    model,
		registry: registry,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.config.HistoryTurns == 0 {
		e.config.HistoryTurns = 10
	}
	if e.config.ContextK == 0 {
		e.config.ContextK = 3
	}
	return e
}

// Registry returns the engine's tool registry.
func (e *Engine) Registry() *ToolRegistry {
	return e.registry
}

// Input is one user utterance to process.
type Input struct {
	Query string
}

// OutputType indicates how the exchange ended.
type OutputType int

const (
	// OutputComplete indicates the exchange finished normally.
	OutputComplete OutputType = iota

	// OutputError indicates a total exchange failure; Text carries the
	// user-facing apology and Error the cause.
	OutputError
)

// Output is the result of one exchange.
type Output struct {
	Type OutputType

	// Text is the final user-facing answer.
	Text string

	// ToolsUsed records the tools invoked, in execution order.
	ToolsUsed []core.ToolExecution

	// Error is set when Type is OutputError.
	Error error
}

// Apology is the generic user-facing message for a total exchange failure.
const Apology = "Sorry, I encountered an error processing that request."

// Run processes one exchange. Exchanges are single-flight: callers must
// not invoke Run concurrently on the same engine, so tool side effects
// never interleave.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.Query)
	requestID := uuid.New().String()

	system := e.config.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}

	// Retrieve memory context before the first model call.
	var messages []core.Message
	if e.memory != nil {
		if result := e.memory.RelevantContext(ctx, query, e.config.ContextK); result.Found {
			system += "\n\n" + result.Text
		}
		if history := e.memory.History(e.config.HistoryTurns); history != "" {
			messages = append(messages, core.NewUserMessage(core.NewTextBlock(history)))
		}
	}
	messages = append(messages, core.NewUserMessage(core.NewTextBlock(query)))

	first, err := e.model.Invoke(ctx, &ModelRequest{
		System:    system,
		Messages:  messages,
		Tools:     e.registry.Definitions(),
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		log.Printf("[ENGINE] Model invocation failed: %v", err)
		return &Output{Type: OutputError, Text: Apology, Error: err}, nil
	}

	// No tool calls: the first response is the final answer.
	if len(first.ToolCalls) == 0 {
		e.record(ctx, query, first.Text)
		return &Output{Type: OutputComplete, Text: first.Text}, nil
	}

	// Execute requests strictly in the order the model emitted them.
	var (
		results   []core.ContentBlock
		answered  []core.ToolCall
		toolsUsed []core.ToolExecution
	)
	for _, call := range first.ToolCalls {
		result, skipped := e.dispatch(ctx, requestID, call, &toolsUsed)
		if skipped {
			continue
		}
		results = append(results, result)
		answered = append(answered, call)
	}

	// Every request was declined: no second model call, no memory entry.
	if len(results) == 0 {
		log.Printf("[ENGINE] No tool results produced, ending exchange")
		return &Output{Type: OutputComplete, Text: first.Text}, nil
	}

	// Rebuild the assistant turn with only the answered calls; skipped
	// calls have no result and must not reach the model.
	assistantBlocks := make([]core.ContentBlock, 0, len(answered)+1)
	if first.Text != "" {
		assistantBlocks = append(assistantBlocks, core.NewTextBlock(first.Text))
	}
	for _, call := range answered {
		assistantBlocks = append(assistantBlocks, core.NewToolUseBlock(call.ID, call.Name, call.Input))
	}
	messages = append(messages,
		core.NewAssistantMessage(assistantBlocks...),
		core.NewUserMessage(results...),
	)

	// Re-invoke without tools: the model folds the results into a final
	// natural-language answer.
	final, err := e.model.Invoke(ctx, &ModelRequest{
		System:    system,
		Messages:  messages,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		log.Printf("[ENGINE] Final model invocation failed: %v", err)
		return &Output{Type: OutputError, Text: Apology, ToolsUsed: toolsUsed, Error: err}, nil
	}

	e.record(ctx, query, final.Text)
	return &Output{Type: OutputComplete, Text: final.Text, ToolsUsed: toolsUsed}, nil
}

// dispatch resolves, gates, validates, and executes one tool call.
// skipped=true means the call produced no result at all (declined
// destructive action).
func (e *Engine) dispatch(ctx context.Context, requestID string, call core.ToolCall, toolsUsed *[]core.ToolExecution) (core.ContentBlock, bool) {
	tool, ok := e.registry.Get(call.Name)
	if !ok {
		log.Printf("[ENGINE] Unknown tool requested: %s", call.Name)
		msg := fmt.Sprintf("I cannot perform that action: unknown tool %q", call.Name)
		return core.NewToolResultBlock(call.ID, msg, true), false
	}

	if tool.Destructive() {
		prompt := tool.Summary(call.Input)
		if e.confirmer == nil || !e.confirmer.Confirm(prompt) {
			log.Printf("[ENGINE] Destructive action declined: %s", call.Name)
			return core.ContentBlock{}, true
		}
	}

	if err := e.registry.Validate(call.Name, call.Input); err != nil {
		log.Printf("[ENGINE] Rejected arguments for %s: %v", call.Name, err)
		*toolsUsed = append(*toolsUsed, core.ToolExecution{Tool: call.Name, Input: call.Input, Error: err.Error()})
		return core.NewToolResultBlock(call.ID, err.Error(), true), false
	}

	start := time.Now()
	result, err := tool.Execute(ctx, &core.ToolParams{
		Input:     call.Input,
		CallID:    call.ID,
		RequestID: requestID,
	})
	execution := core.ToolExecution{
		Tool:       call.Name,
		Input:      call.Input,
		DurationMs: time.Since(start).Milliseconds(),
	}

	var block core.ContentBlock
	switch {
	case err != nil:
		execution.Error = err.Error()
		block = core.NewToolResultBlock(call.ID, err.Error(), true)
	case result == nil:
		execution.Error = "no result returned"
		block = core.NewToolResultBlock(call.ID, "no result returned", true)
	case !result.Success:
		execution.Error = result.Error
		block = core.NewToolResultBlock(call.ID, result.Error, true)
	default:
		execution.Result = result.Data
		block = core.NewToolResultBlock(call.ID, formatResultData(result.Data), false)
	}

	*toolsUsed = append(*toolsUsed, execution)
	return block, false
}

func (e *Engine) record(ctx context.Context, userText, assistantText string) {
	if e.memory == nil || assistantText == "" {
		return
	}
	e.memory.AddMessage(ctx, userText, assistantText)
}

func formatResultData(data interface{}) string {
	switch v := data.(type) {
	case nil:
		return "done"
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// DefaultSystemPrompt is the default system prompt for the assistant.
const DefaultSystemPrompt = `You are an advanced AI assistant designed to help users with a wide range of tasks and tools.

GUIDELINES:
- Be conversational and helpful
- Ask clarifying questions when needed
- Use tools when you have enough information, in the order the task requires
- Always prioritize user safety; critical actions like shutting down or restarting the system require explicit user confirmation

AVAILABLE CAPABILITIES:
- Search the web and look up facts, news, and weather
- Play and stop music
- Recall information from previous conversations
- Answer questions from the user's documents
- Control the system (screenshots, volume, shutdown, restart)`
