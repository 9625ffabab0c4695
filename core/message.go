package core

import "encoding/json"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// BlockType identifies the kind of content a block carries.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// ContentBlock is one unit of message content. Exactly the fields for the
// block's Type are populated.
type ContentBlock struct {
	Type BlockType

	// Text content (BlockText), or the result payload (BlockToolResult).
	Text string

	// Tool call identity (BlockToolUse and BlockToolResult).
	CallID string

	// Tool name and arguments (BlockToolUse).
	Name  string
	Input json.RawMessage

	// IsError marks a failed tool result (BlockToolResult).
	IsError bool
}

// NewTextBlock creates a text content block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// NewToolUseBlock creates a tool-use content block.
func NewToolUseBlock(callID, name string, input json.RawMessage) ContentBlock {
	return ContentBlock{Type: BlockToolUse, CallID: callID, Name: name, Input: input}
}

// NewToolResultBlock creates a tool-result content block.
func NewToolResultBlock(callID, content string, isError bool) ContentBlock {
	return ContentBlock{Type: BlockToolResult, CallID: callID, Text: content, IsError: isError}
}

// Message is one turn of model conversation, provider-neutral.
type Message struct {
	Role   Role
	Blocks []ContentBlock
}

// NewUserMessage creates a user message from blocks.
func NewUserMessage(blocks ...ContentBlock) Message {
	return Message{Role: RoleUser, Blocks: blocks}
}

// NewAssistantMessage creates an assistant message from blocks.
func NewAssistantMessage(blocks ...ContentBlock) Message {
	return Message{Role: RoleAssistant, Blocks: blocks}
}

// ToolCall is a model-issued request to execute a tool. Produced by the
// model's response, consumed exactly once by the dispatch engine.
type ToolCall struct {
	// ID is the model-assigned identifier that keys the eventual result.
	ID string

	// Name is the requested tool.
	Name string

	// Input is the raw JSON arguments.
	Input json.RawMessage
}
