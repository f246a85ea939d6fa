package agent

import (
	jsonschema "github.com/swaggest/jsonschema-go"

	"github.com/elee1766/taskchat/src/aisdk"
)

// ownerParam is the dispatcher-injected parameter carrying the trusted user
// id. It is stripped from every advertised schema so the model never learns
// it exists.
const ownerParam = "user_id"

// ToProviderTool converts a Tool to the parameter-definition format the chat
// API expects.
func ToProviderTool(tool Tool) *aisdk.Tool {
	defs := make(map[string]aisdk.ParameterDefinition)

	schema := tool.GetParameters()
	if schema != nil {
		required := make(map[string]bool, len(schema.Required))
		for _, name := range schema.Required {
			required[name] = true
		}

		for name, prop := range schema.Properties {
			if name == ownerParam {
				continue
			}
			ps := prop.TypeObject
			if ps == nil {
				continue
			}

			def := aisdk.ParameterDefinition{
				Type:     providerType(ps),
				Required: required[name],
			}
			if ps.Description != nil {
				def.Description = *ps.Description
			}
			if ps.Default != nil {
				def.Default = *ps.Default
			}
			defs[name] = def
		}
	}

	return &aisdk.Tool{
		Name:                 tool.GetName(),
		Description:          tool.GetDescription(),
		ParameterDefinitions: defs,
	}
}

// ToProviderTools converts a slice of Tools for an API request.
func ToProviderTools(tools []Tool) []*aisdk.Tool {
	out := make([]*aisdk.Tool, len(tools))
	for i, tool := range tools {
		out[i] = ToProviderTool(tool)
	}
	return out
}

// providerType maps a JSON schema type to the provider's parameter type
// vocabulary.
func providerType(s *jsonschema.Schema) string {
	if s.Type == nil || s.Type.SimpleTypes == nil {
		return "str"
	}
	switch *s.Type.SimpleTypes {
	case jsonschema.String:
		return "str"
	case jsonschema.Boolean:
		return "bool"
	case jsonschema.Integer:
		return "int"
	case jsonschema.Number:
		return "float"
	case jsonschema.Object:
		return "dict"
	case jsonschema.Array:
		return "list"
	}
	return "str"
}
