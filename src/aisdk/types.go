// Package aisdk defines the types exchanged with the hosted chat model API.
package aisdk

import (
	"context"
	"encoding/json"
)

// Chat history roles expected by the provider. Stored message roles are
// lowercase and must be mapped before crossing this boundary.
const (
	RoleUser    = "USER"
	RoleChatbot = "CHATBOT"
)

// ChatMessage is a single entry of provider chat history. Both fields are
// always populated; the provider rejects requests containing null bodies.
type ChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ToolCall is a named, parameterized action the model asks us to execute.
type ToolCall struct {
	Name       string          `json:"name"`
	Parameters json.RawMessage `json:"parameters"`
}

// ToolResult couples a tool call with its outputs. Results are echoed back to
// the model on the following turn.
type ToolResult struct {
	Call    ToolCall         `json:"call"`
	Outputs []map[string]any `json:"outputs"`
}

// ParameterDefinition describes a single tool parameter in the provider's
// schema vocabulary ("str", "int", "bool", "float", "dict", "list").
type ParameterDefinition struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// Tool is a tool definition in the format the chat API expects.
type Tool struct {
	Name                 string                         `json:"name"`
	Description          string                         `json:"description"`
	ParameterDefinitions map[string]ParameterDefinition `json:"parameter_definitions"`
}

// ChatRequest is a single turn submitted to the chat API.
type ChatRequest struct {
	Model       string        `json:"model"`
	Message     string        `json:"message"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
	ToolResults []ToolResult  `json:"tool_results,omitempty"`
	Tools       []*Tool       `json:"tools,omitempty"`
	Preamble    string        `json:"preamble,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ChatResponse is the model's answer to one turn: either free text or a list
// of tool calls to execute. Callers branch on HasToolCalls.
type ChatResponse struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// HasToolCalls reports whether the model requested tool execution.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// ToolResponse is the envelope a tool implementation returns to the runtime.
type ToolResponse struct {
	Type    string `json:"type"`
	Content []byte `json:"content"`
	IsError bool   `json:"is_error"`
}

// Provider is the minimal contract the conversation loop needs from a model
// backend.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
