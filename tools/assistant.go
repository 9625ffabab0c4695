package tools

import (
	"github.com/auralabs/aura-go-sdk/core"
)

// AssistantToolDefinitions returns the full catalog of assistant tool
// definitions. Tools flagged Destructive require explicit user confirmation
// before the dispatcher will execute them.
func AssistantToolDefinitions() []core.ToolDefinition {
	return []core.ToolDefinition{
		{
			ToolName:        "google_search",
			ToolDescription: "Search the web for current information on any topic.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"query": StringProperty("The search query"),
			}, "query"),
		},
		{
			ToolName:        "wikipedia_search",
			ToolDescription: "Look up an encyclopedic summary of a topic on Wikipedia.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"topic": StringProperty("The topic to look up"),
			}, "topic"),
		},
		{
			ToolName:        "math_calc",
			ToolDescription: "Evaluate a mathematical expression and return the result.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"expression": StringProperty("The arithmetic expression to evaluate, e.g. \"2 * (3 + 4)\""),
			}, "expression"),
		},
		{
			ToolName:        "get_news",
			ToolDescription: "Fetch current news headlines, optionally filtered by topic.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"topic": StringProperty("Optional topic to filter headlines by"),
			}),
		},
		{
			ToolName:        "get_weather",
			ToolDescription: "Get the current weather for a location.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"location": StringProperty("City name, e.g. \"Berlin\""),
			}, "location"),
		},
		{
			ToolName:        "play_music",
			ToolDescription: "Find and play a song or playlist matching the request. Stops anything currently playing.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"query": StringProperty("Song, artist, or playlist to play"),
			}, "query"),
		},
		{
			ToolName:        "stop_music",
			ToolDescription: "Stop the currently playing music.",
			InputSchema:     EmptySchema(),
		},
		{
			ToolName:        "get_current_time",
			ToolDescription: "Get the current date and time.",
			InputSchema:     EmptySchema(),
		},
		{
			ToolName:        "recall_context",
			ToolDescription: "Search past conversations for information relevant to a question.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"query": StringProperty("What to look for in past conversations"),
			}, "query"),
		},
		{
			ToolName:        "ask_document_question",
			ToolDescription: "Answer a question from the user's ingested documents.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"question": StringProperty("The question to answer from the documents"),
			}, "question"),
		},
		{
			ToolName:        "take_screenshot",
			ToolDescription: "Capture a screenshot of the current screen.",
			InputSchema:     EmptySchema(),
		},
		{
			ToolName:        "generate_image",
			ToolDescription: "Generate an image from a text description.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"prompt": StringProperty("Description of the image to generate"),
			}, "prompt"),
		},
		{
			ToolName:        "analyze_image",
			ToolDescription: "Describe the contents of an image file.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"path": StringProperty("Path to the image file"),
			}, "path"),
		},
		{
			ToolName:        "set_volume",
			ToolDescription: "Set the system output volume.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"level": IntegerProperty("Volume level from 0 to 100"),
			}, "level"),
		},
		{
			ToolName:        "increase_volume",
			ToolDescription: "Raise the system output volume a step.",
			InputSchema:     EmptySchema(),
		},
		{
			ToolName:        "decrease_volume",
			ToolDescription: "Lower the system output volume a step.",
			InputSchema:     EmptySchema(),
		},
		{
			ToolName:        "open_app",
			ToolDescription: "Open an application on the user's machine.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"name": StringProperty("Name of the application to open"),
			}, "name"),
		},
		{
			ToolName:        "shutdown_system",
			ToolDescription: "Shut down the user's machine.",
			InputSchema:     EmptySchema(),
			Destructive:     true,
			SummaryTemplate: "Shut down this machine",
		},
		{
			ToolName:        "restart_system",
			ToolDescription: "Restart the user's machine.",
			InputSchema:     EmptySchema(),
			Destructive:     true,
			SummaryTemplate: "Restart this machine",
		},
		{
			ToolName:        "end_session",
			ToolDescription: "End the current assistant session.",
			InputSchema:     EmptySchema(),
			Destructive:     true,
			SummaryTemplate: "End the current session",
		},
	}
}

// AssistantTools wraps every assistant tool definition around a single
// executor, which receives the tool name and raw input for each call.
func AssistantTools(executor core.ToolExecutor) []core.Tool {
	defs := AssistantToolDefinitions()
	tools := make([]core.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, core.NewExecutorTool(def, executor))
	}
	return tools
}
