package agent

import (
	"context"

	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/elee1766/taskchat/src/aisdk"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetName returns the tool's name
	GetName() string

	// GetDescription returns the tool's description
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}
