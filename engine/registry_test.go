package engine_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/auralabs/aura-go-sdk/core"
	"github.com/auralabs/aura-go-sdk/engine"
	"github.com/auralabs/aura-go-sdk/tools"
)

func TestToolRegistry_DuplicateNamesRejected(t *testing.T) {
	a := &trackingTool{def: echoDef("same_name")}
	b := &trackingTool{def: echoDef("same_name")}

	if _, err := engine.NewToolRegistry(a, b); err == nil {
		t.Fatal("Registry accepted two tools with the same name")
	}
}

func TestToolRegistry_EmptyNameRejected(t *testing.T) {
	nameless := &trackingTool{def: core.ToolDefinition{InputSchema: tools.EmptySchema()}}

	if _, err := engine.NewToolRegistry(nameless); err == nil {
		t.Fatal("Registry accepted a tool with an empty name")
	}
}

func TestToolRegistry_GetAndNames(t *testing.T) {
	a := &trackingTool{def: echoDef("alpha")}
	b := &trackingTool{def: echoDef("beta")}
	registry, err := engine.NewToolRegistry(a, b)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	if _, ok := registry.Get("alpha"); !ok {
		t.Error("Get failed for a registered tool")
	}
	if _, ok := registry.Get("gamma"); ok {
		t.Error("Get succeeded for an unregistered tool")
	}

	names := registry.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names = %v, want registration order alpha, beta", names)
	}
}

func TestToolRegistry_Validate(t *testing.T) {
	tool := &trackingTool{def: echoDef("echo")}
	registry, err := engine.NewToolRegistry(tool)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	if err := registry.Validate("echo", json.RawMessage(`{"query":"hi"}`)); err != nil {
		t.Errorf("Valid input rejected: %v", err)
	}

	err = registry.Validate("echo", json.RawMessage(`{"query":42}`))
	if err == nil {
		t.Fatal("Wrong-typed input accepted")
	}
	if !strings.Contains(err.Error(), "invalid arguments") {
		t.Errorf("Validation error = %q, want invalid arguments prefix", err)
	}

	if err := registry.Validate("echo", json.RawMessage(`{}`)); err == nil {
		t.Error("Input missing a required property was accepted")
	}

	// A tool the model invented has no schema; validation passes through
	// and dispatch handles the unknown name.
	if err := registry.Validate("not_registered", json.RawMessage(`{}`)); err != nil {
		t.Errorf("Validate for unknown tool = %v, want nil", err)
	}
}

func TestToolRegistry_EmptyInputTreatedAsEmptyObject(t *testing.T) {
	tool := &trackingTool{def: core.ToolDefinition{
		ToolName:    "no_args",
		InputSchema: tools.EmptySchema(),
	}}
	registry, err := engine.NewToolRegistry(tool)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	if err := registry.Validate("no_args", nil); err != nil {
		t.Errorf("Nil input rejected for a no-argument tool: %v", err)
	}
}

func TestToolRegistry_DefinitionsCarryDestructiveFlag(t *testing.T) {
	shutdown := &trackingTool{def: core.ToolDefinition{
		ToolName:    "shutdown_system",
		InputSchema: tools.EmptySchema(),
		Destructive: true,
	}}
	clock := &trackingTool{def: echoDef("get_time")}
	registry, err := engine.NewToolRegistry(shutdown, clock)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}

	defs := registry.Definitions()
	if len(defs) != 2 {
		t.Fatalf("Definitions returned %d entries, want 2", len(defs))
	}
	if !defs[0].Destructive || defs[0].ToolName != "shutdown_system" {
		t.Errorf("First definition = %+v, want destructive shutdown_system", defs[0])
	}
	if defs[1].Destructive {
		t.Errorf("Non-destructive tool flagged destructive: %+v", defs[1])
	}
}
