package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/auralabs/aura-go-sdk/audio"
	"github.com/auralabs/aura-go-sdk/core"
	"github.com/auralabs/aura-go-sdk/memory"
)

// Built-in tools are the catalog entries the SDK can serve in-process:
// memory recall, document lookup, clock, and music control. Everything else
// in AssistantToolDefinitions needs an external executor.

// NewRecallContextTool answers recall_context calls from the memory manager.
func NewRecallContextTool(mgr *memory.Manager, k int) core.Tool {
	if k <= 0 {
		k = 3
	}
	def := findDefinition("recall_context")

	return core.NewFuncTool(def, func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(params.Input, &args); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}

		result := mgr.RelevantContext(ctx, args.Query, k)
		if !result.Found {
			return &core.ToolResult{Success: true, Data: "No relevant past conversations found."}, nil
		}
		return &core.ToolResult{Success: true, Data: result.Text}, nil
	})
}

// NewAskDocumentsTool answers ask_document_question calls by searching the
// ingested document chunks in the semantic store.
func NewAskDocumentsTool(store *memory.SemanticStore, k int) core.Tool {
	if k <= 0 {
		k = 3
	}
	def := findDefinition("ask_document_question")

	return core.NewFuncTool(def, func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		var args struct {
			Question string `json:"question"`
		}
		if err := json.Unmarshal(params.Input, &args); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}

		records, err := store.Search(ctx, args.Question, k)
		if err != nil {
			return nil, fmt.Errorf("search documents: %w", err)
		}

		var b strings.Builder
		for _, rec := range records {
			if rec.Kind != memory.KindDocument {
				continue
			}
			fmt.Fprintf(&b, "[%s]\n%s\n\n", rec.Source, rec.Text)
		}
		if b.Len() == 0 {
			return &core.ToolResult{Success: true, Data: "No ingested documents match that question."}, nil
		}
		return &core.ToolResult{Success: true, Data: strings.TrimSpace(b.String())}, nil
	})
}

// NewCurrentTimeTool answers get_current_time calls with the local clock.
func NewCurrentTimeTool() core.Tool {
	def := findDefinition("get_current_time")

	return core.NewFuncTool(def, func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		now := time.Now()
		return &core.ToolResult{
			Success: true,
			Data:    now.Format("Monday, January 2, 2006 at 3:04 PM"),
		}, nil
	})
}

// NewPlayMusicTool answers play_music calls via the playback controller.
func NewPlayMusicTool(player *audio.PlaybackController) core.Tool {
	def := findDefinition("play_music")

	return core.NewFuncTool(def, func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(params.Input, &args); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}

		title, err := player.Play(ctx, args.Query)
		if err != nil {
			return &core.ToolResult{Success: false, Error: fmt.Sprintf("could not play %q: %v", args.Query, err)}, nil
		}
		return &core.ToolResult{Success: true, Data: fmt.Sprintf("Now playing: %s", title)}, nil
	})
}

// NewStopMusicTool answers stop_music calls.
func NewStopMusicTool(player *audio.PlaybackController) core.Tool {
	def := findDefinition("stop_music")

	return core.NewFuncTool(def, func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		player.Stop()
		return &core.ToolResult{Success: true, Data: "Music stopped."}, nil
	})
}

func findDefinition(name string) core.ToolDefinition {
	for _, def := range AssistantToolDefinitions() {
		if def.ToolName == name {
			return def
		}
	}
	// Unreachable for catalog names; keeps the helper total.
	return core.ToolDefinition{ToolName: name, InputSchema: EmptySchema()}
}
