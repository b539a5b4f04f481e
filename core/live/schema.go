package live

import (
	"strings"

	"github.com/invopop/jsonschema"
)

// FunctionDeclaration registers one callable function with the model.
type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Schema is the parameter schema dialect the transport understands: a
// JSON-schema subset with upper-case type names.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// NewFunctionDeclaration reflects a declaration's parameter schema from
// a Go struct. Field descriptions come from `jsonschema:"description=…"`
// tags; parameters may be nil for functions that take no arguments.
func NewFunctionDeclaration(name, description string, parameters any) FunctionDeclaration {
	declaration := FunctionDeclaration{Name: name, Description: description}
	if parameters == nil {
		return declaration
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	declaration.Parameters = convertSchema(reflector.Reflect(parameters))
	return declaration
}

func convertSchema(reflected *jsonschema.Schema) *Schema {
	if reflected == nil {
		return nil
	}

	converted := &Schema{
		Type:        strings.ToUpper(reflected.Type),
		Description: reflected.Description,
		Items:       convertSchema(reflected.Items),
		Required:    reflected.Required,
	}

	if reflected.Properties != nil {
		converted.Properties = map[string]*Schema{}
		for pair := reflected.Properties.Oldest(); pair != nil; pair = pair.Next() {
			converted.Properties[pair.Key] = convertSchema(pair.Value)
		}
	}

	return converted
}
