package render

import (
	"encoding/json"
	"fmt"

	gojsonschema "github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/schemaforge/schema"
)

// JSONSchema converts s into a minimal JSON Schema document: type,
// properties/required (objects), items (arrays), and enum/format (the
// specialized strings). Internal numeric/length ranges are deliberately
// not emitted: they are inference artifacts, often a single observed
// value, too speculative to declare as a constraint.
func JSONSchema(s schema.Schema) *gojsonschema.Schema {
	return buildNode(s)
}

// Marshal renders s as an indented JSON Schema document, using indent as
// the per-level indentation string.
func Marshal(s schema.Schema, indent string) ([]byte, error) {
	node := JSONSchema(s)

	out, err := json.MarshalIndent(node, "", indent)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	return append(out, '\n'), nil
}

func buildNode(s schema.Schema) *gojsonschema.Schema {
	switch s.Kind() {
	case schema.KindInitial, schema.KindIndefinite:
		return &gojsonschema.Schema{}
	case schema.KindNull:
		return &gojsonschema.Schema{Type: "null"}
	case schema.KindBoolean:
		return &gojsonschema.Schema{Type: "boolean"}
	case schema.KindNumber:
		if s.Number().Float {
			return &gojsonschema.Schema{Type: "number"}
		}

		return &gojsonschema.Schema{Type: "integer"}
	case schema.KindString:
		return buildString(s.Str())
	case schema.KindArray:
		return &gojsonschema.Schema{Type: "array", Items: buildNode(s.Array().Item)}
	case schema.KindObject:
		return buildObject(s.Object())
	case schema.KindNullable:
		return buildNullable(s.Inner())
	}

	return &gojsonschema.Schema{}
}

func buildString(k schema.StringKind) *gojsonschema.Schema {
	node := &gojsonschema.Schema{Type: "string"}

	switch k.Tag {
	case schema.TagUUID:
		node.Format = "uuid"
	case schema.TagEmail:
		node.Format = "email"
	case schema.TagURL:
		node.Format = "uri"
	case schema.TagHostname:
		node.Format = "hostname"
	case schema.TagIsoDate:
		node.Format = "date"
	case schema.TagIsoDateTime:
		node.Format = "date-time"
	case schema.TagEnum:
		node.Enum = make([]any, len(k.Enum))
		for i, v := range k.Enum {
			node.Enum[i] = v
		}
	case schema.TagNumericString, schema.TagUnknown:
		// No format, and length bounds are deliberately not emitted.
	}

	return node
}

func buildObject(o schema.ObjectKind) *gojsonschema.Schema {
	node := &gojsonschema.Schema{
		Type:          "object",
		Properties:    make(map[string]*gojsonschema.Schema, len(o.Order)),
		PropertyOrder: append([]string{}, o.Order...),
	}

	for _, name := range o.Order {
		if sub, ok := o.Required[name]; ok {
			node.Properties[name] = buildNode(sub)
			node.Required = append(node.Required, name)

			continue
		}

		if sub, ok := o.Optional[name]; ok {
			node.Properties[name] = buildNode(sub)
		}
	}

	return node
}

// buildNullable builds inner's node and widens its type to a two-element
// ["null", <type>] array, preserving every other field inner set (Items,
// Properties, Enum, Format).
func buildNullable(inner schema.Schema) *gojsonschema.Schema {
	node := buildNode(inner)

	if node.Type == "" {
		return node
	}

	node.Types = []string{"null", node.Type}
	node.Type = ""

	return node
}
