package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/auralabs/aura-go-sdk/core"
)

// ToolRegistry is the fixed mapping from tool name to capability. Built
// once at startup, read-only afterward; the engine only ever reads it.
type ToolRegistry struct {
	order   []string
	tools   map[string]core.Tool
	schemas map[string]*gojsonschema.Schema
}

// NewToolRegistry creates a registry with the given tools. Registration
// fails on duplicate names or unparseable schemas so misconfiguration
// surfaces at startup, not mid-exchange.
func NewToolRegistry(tools ...core.Tool) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools:   make(map[string]core.Tool, len(tools)),
		schemas: make(map[string]*gojsonschema.Schema, len(tools)),
	}
	for _, tool := range tools {
		if err := r.register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *ToolRegistry) register(tool core.Tool) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool with empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool %q", name)
	}

	if schemaDef := tool.InputSchema(); schemaDef != nil {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaDef))
		if err != nil {
			return fmt.Errorf("compile schema for %q: %w", name, err)
		}
		r.schemas[name] = schema
	}

	r.order = append(r.order, name)
	r.tools[name] = tool
	return nil
}

// Get returns the tool registered under name.
func (r *ToolRegistry) Get(name string) (core.Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in registration order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Validate checks input against the tool's compiled schema. Tools without
// a schema accept anything.
func (r *ToolRegistry) Validate(name string, input json.RawMessage) error {
	schema, ok := r.schemas[name]
	if !ok {
		return nil
	}

	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(input))
	if err != nil {
		return fmt.Errorf("validate input: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, resultError := range result.Errors() {
		messages = append(messages, resultError.String())
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(messages, "; "))
}

// Definitions returns the definitions of all registered tools, in
// registration order, for handing to the model.
func (r *ToolRegistry) Definitions() []core.ToolDefinition {
	defs := make([]core.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		defs = append(defs, core.ToolDefinition{
			ToolName:        tool.Name(),
			ToolDescription: tool.Description(),
			InputSchema:     tool.InputSchema(),
			Destructive:     tool.Destructive(),
		})
	}
	return defs
}
