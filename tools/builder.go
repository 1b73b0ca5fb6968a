package tools

import (
	"slices"

	"github.com/ollama/ollama/api"
)

// Builder assembles an api.Tool schema fluently.
type Builder struct {
	tool api.Tool
}

func NewBuilder(name, description string) *Builder {
	b := &Builder{
		tool: api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        name,
				Description: description,
			},
		},
	}

	b.tool.Function.Parameters.Type = "object"
	b.tool.Function.Parameters.Properties = make(map[string]api.ToolProperty, 8)
	return b
}

func (b *Builder) StringParam(name, desc string, required bool) *Builder {
	b.setProp(name, api.ToolProperty{
		Type:        api.PropertyType{"string"},
		Description: desc,
	}, required)
	return b
}

func (b *Builder) EnumParam(name, desc string, values []string, required bool) *Builder {
	b.setProp(name, api.ToolProperty{
		Type:        api.PropertyType{"string"},
		Description: desc,
		Enum:        toAnySlice(values),
	}, required)
	return b
}

func (b *Builder) IntParam(name, desc string, required bool) *Builder {
	b.setProp(name, api.ToolProperty{
		Type:        api.PropertyType{"integer"},
		Description: desc,
	}, required)
	return b
}

func (b *Builder) Build() api.Tool {
	return b.tool
}

func (b *Builder) setProp(name string, prop api.ToolProperty, required bool) {
	b.tool.Function.Parameters.Properties[name] = prop
	if required && !slices.Contains(b.tool.Function.Parameters.Required, name) {
		b.tool.Function.Parameters.Required = append(b.tool.Function.Parameters.Required, name)
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
