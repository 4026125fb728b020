// Package parse implements the schema parser (component C4): mapping a
// JSON Schema document (drafts >= 7) into the [schema.Schema] algebra.
// Decoding round-trips doc through github.com/google/jsonschema-go's
// jsonschema.Schema as the wire representation, rather than hand-rolling a
// second JSON Schema struct.
package parse

import (
	"encoding/json"
	"fmt"
	"sort"

	gojsonschema "github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/schemaforge/diag"
	"go.jacobcolvin.com/schemaforge/schema"
)

// Default bounds applied when a JSON Schema supplies no explicit range.
// Not guaranteed by the format, just this implementation's documented
// choice.
const (
	DefaultIntMin   int64   = -1000
	DefaultIntMax   int64   = 1000
	DefaultFloatMin float64 = -1000.0
	DefaultFloatMax float64 = 1000.0
	DefaultStrMin   int     = 0
	DefaultStrMax   int     = 32
	DefaultArrMin   int     = 0
	DefaultArrMax   int     = 10
)

// Parse decodes doc as a JSON Schema document and converts it into a
// Schema. Unsupported-but-present keywords are reported to sink as
// one-line warnings and then ignored, except exclusiveMinimum and
// exclusiveMaximum, which are reported and then used as inclusive bounds.
func Parse(doc []byte, sink diag.Sink) (schema.Schema, error) {
	if sink == nil {
		sink = diag.Discard
	}

	var node gojsonschema.Schema

	err := json.Unmarshal(doc, &node)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("%w: %w", schema.ErrInvalidSchema, err)
	}

	return parseNode(&node, sink)
}

func parseNode(s *gojsonschema.Schema, sink diag.Sink) (schema.Schema, error) {
	warnUnsupported(s, sink)

	if s.Types != nil && len(s.Types) == 0 {
		return schema.Schema{}, fmt.Errorf("%w: empty type array", schema.ErrInvalidConstraint)
	}

	if len(s.Types) == 2 {
		other, ok := nullPairOther(s.Types)
		if !ok {
			return schema.Schema{}, fmt.Errorf("%w: type array %v not supported", schema.ErrUnknownType, s.Types)
		}

		inner := *s
		inner.Types = nil
		inner.Type = other

		innerSchema, err := parseTyped(&inner, sink)
		if err != nil {
			return schema.Schema{}, err
		}

		return schema.Nullable(innerSchema), nil
	}

	if s.Type != "" {
		return parseTyped(s, sink)
	}

	if len(s.Types) == 1 {
		single := *s
		single.Type = s.Types[0]
		single.Types = nil

		return parseTyped(&single, sink)
	}

	if nullable, matched, err := parseNullableUnion(s.AnyOf, sink); matched {
		return nullable, err
	}

	if nullable, matched, err := parseNullableUnion(s.OneOf, sink); matched {
		return nullable, err
	}

	if len(s.AnyOf) > 0 || len(s.OneOf) > 0 {
		return schema.Schema{}, fmt.Errorf("%w: anyOf/oneOf", schema.ErrUnsupportedUnion)
	}

	return schema.Schema{}, fmt.Errorf("%w", schema.ErrMissingType)
}

// nullPairOther reports whether types is exactly {"null", other} in either
// order, returning other.
func nullPairOther(types []string) (string, bool) {
	if len(types) != 2 {
		return "", false
	}

	switch {
	case types[0] == "null" && types[1] != "null":
		return types[1], true
	case types[1] == "null" && types[0] != "null":
		return types[0], true
	default:
		return "", false
	}
}

// parseNullableUnion matches members against the "anyOf/oneOf with exactly
// two members, one being {type:"null"}" rule. matched is false when members
// doesn't have exactly two entries, letting the caller decide whether
// that's "absent" (fall through) or "present but malformed" (error).
func parseNullableUnion(members []*gojsonschema.Schema, sink diag.Sink) (schema.Schema, bool, error) {
	if len(members) != 2 {
		return schema.Schema{}, false, nil
	}

	var nullIdx = -1

	for i, m := range members {
		if isNullSchema(m) {
			nullIdx = i

			break
		}
	}

	if nullIdx == -1 {
		return schema.Schema{}, true, fmt.Errorf("%w: anyOf/oneOf", schema.ErrUnsupportedUnion)
	}

	other := members[1-nullIdx]

	innerSchema, err := parseNode(other, sink)
	if err != nil {
		return schema.Schema{}, true, err
	}

	return schema.Nullable(innerSchema), true, nil
}

func isNullSchema(s *gojsonschema.Schema) bool {
	if s == nil {
		return false
	}

	if s.Type == "null" {
		return true
	}

	return len(s.Types) == 1 && s.Types[0] == "null"
}

func parseTyped(s *gojsonschema.Schema, sink diag.Sink) (schema.Schema, error) {
	switch s.Type {
	case "boolean":
		return schema.Boolean(), nil
	case "null":
		return schema.Null(), nil
	case "string":
		return parseString(s, sink)
	case "integer":
		return parseNumber(s, true)
	case "number":
		return parseNumber(s, false)
	case "object":
		return parseObject(s, sink)
	case "array":
		return parseArray(s, sink)
	default:
		return schema.Schema{}, fmt.Errorf("%w: %q", schema.ErrUnknownType, s.Type)
	}
}

func parseString(s *gojsonschema.Schema, sink diag.Sink) (schema.Schema, error) {
	if s.Enum != nil {
		if len(s.Enum) == 0 {
			return schema.Schema{}, fmt.Errorf("%w: enum", schema.ErrEmptyEnum)
		}

		values := make([]string, 0, len(s.Enum))

		for _, v := range s.Enum {
			if str, ok := v.(string); ok {
				values = append(values, str)
			}
		}

		return schema.String(schema.EnumString(values)), nil
	}

	if s.Format != "" {
		if tag, ok := formatTag(s.Format); ok {
			return schema.String(schema.Tagged(tag)), nil
		}

		sink.Warnf("format %q is not supported, ignoring", s.Format)
	}

	minLen, maxLen := DefaultStrMin, DefaultStrMax

	if s.MinLength != nil {
		minLen = *s.MinLength
	}

	if s.MaxLength != nil {
		maxLen = *s.MaxLength
	}

	if minLen > maxLen {
		return schema.Schema{}, fmt.Errorf("%w: minLength %d > maxLength %d", schema.ErrMinGreaterThanMax, minLen, maxLen)
	}

	return schema.String(schema.UnknownString(minLen, maxLen, nil)), nil
}

func formatTag(format string) (schema.StringTag, bool) {
	switch format {
	case "uuid":
		return schema.TagUUID, true
	case "email":
		return schema.TagEmail, true
	case "uri", "url":
		return schema.TagURL, true
	case "hostname":
		return schema.TagHostname, true
	case "date":
		return schema.TagIsoDate, true
	case "date-time":
		return schema.TagIsoDateTime, true
	default:
		return 0, false
	}
}

func parseNumber(s *gojsonschema.Schema, integer bool) (schema.Schema, error) {
	if integer {
		minV, maxV := DefaultIntMin, DefaultIntMax

		switch {
		case s.Minimum != nil:
			minV = int64(*s.Minimum)
		case s.ExclusiveMinimum != nil:
			minV = int64(*s.ExclusiveMinimum)
		}

		switch {
		case s.Maximum != nil:
			maxV = int64(*s.Maximum)
		case s.ExclusiveMaximum != nil:
			maxV = int64(*s.ExclusiveMaximum)
		}

		if minV > maxV {
			return schema.Schema{}, fmt.Errorf("%w: minimum %d > maximum %d", schema.ErrMinGreaterThanMax, minV, maxV)
		}

		return schema.Number(schema.Integer(minV, maxV)), nil
	}

	minV, maxV := DefaultFloatMin, DefaultFloatMax

	switch {
	case s.Minimum != nil:
		minV = *s.Minimum
	case s.ExclusiveMinimum != nil:
		minV = *s.ExclusiveMinimum
	}

	switch {
	case s.Maximum != nil:
		maxV = *s.Maximum
	case s.ExclusiveMaximum != nil:
		maxV = *s.ExclusiveMaximum
	}

	if minV > maxV {
		return schema.Schema{}, fmt.Errorf("%w: minimum %v > maximum %v", schema.ErrMinGreaterThanMax, minV, maxV)
	}

	return schema.Number(schema.Float(minV, maxV)), nil
}

func parseObject(s *gojsonschema.Schema, sink diag.Sink) (schema.Schema, error) {
	requiredNames := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		requiredNames[name] = true
	}

	required := map[string]schema.Schema{}
	optional := map[string]schema.Schema{}
	order := make([]string, 0, len(s.PropertyOrder))

	names := s.PropertyOrder
	if len(names) == 0 {
		// No propertyOrder hint: fall back to sorted key order rather than
		// Go's randomized map iteration, keeping output deterministic.
		names = make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}

		sort.Strings(names)
	}

	for _, name := range names {
		sub, ok := s.Properties[name]
		if !ok {
			continue
		}

		fieldSchema, err := parseNode(sub, sink)
		if err != nil {
			return schema.Schema{}, err
		}

		order = append(order, name)

		if requiredNames[name] {
			required[name] = fieldSchema
		} else {
			optional[name] = fieldSchema
		}
	}

	return schema.NewObject(schema.NewObjectKind(required, optional, order)), nil
}

func parseArray(s *gojsonschema.Schema, sink diag.Sink) (schema.Schema, error) {
	if s.Items == nil {
		return schema.Schema{}, fmt.Errorf("%w", schema.ErrMissingItems)
	}

	item, err := parseNode(s.Items, sink)
	if err != nil {
		return schema.Schema{}, err
	}

	minLen, maxLen := DefaultArrMin, DefaultArrMax

	if s.MinItems != nil {
		minLen = int(*s.MinItems)
	}

	if s.MaxItems != nil {
		maxLen = int(*s.MaxItems)
	}

	if minLen > maxLen {
		return schema.Schema{}, fmt.Errorf("%w: minItems %d > maxItems %d", schema.ErrMinGreaterThanMax, minLen, maxLen)
	}

	return schema.NewArray(minLen, maxLen, item), nil
}

// warnUnsupported reports every populated-but-unsupported keyword on s.
// The caller then proceeds as if the keyword were absent, except for
// exclusiveMinimum/exclusiveMaximum, which parseNumber uses as inclusive
// bounds.
func warnUnsupported(s *gojsonschema.Schema, sink diag.Sink) {
	warnIf(sink, s.Ref != "", "$ref")
	warnIf(sink, len(s.AllOf) > 0, "allOf")
	warnIf(sink, s.If != nil, "if/then/else")
	warnIf(sink, s.Not != nil, "not")
	warnIf(sink, len(s.PatternProperties) > 0, "patternProperties")
	warnIf(sink, s.AdditionalProperties != nil, "additionalProperties")
	warnIf(sink, s.Const != nil, "const")
	warnIf(sink, s.Default != nil, "default")
	warnIf(sink, s.PropertyNames != nil, "propertyNames")
	warnIf(sink, s.MinProperties != nil, "minProperties")
	warnIf(sink, s.MaxProperties != nil, "maxProperties")
	warnIf(sink, s.Contains != nil, "contains")
	warnIf(sink, s.ContentEncoding != "", "contentEncoding")
	warnIf(sink, s.Pattern != "", "pattern")
	warnIf(sink, s.MultipleOf != nil, "multipleOf")
	warnIf(sink, s.UniqueItems, "uniqueItems")

	if s.ExclusiveMinimum != nil {
		sink.Warnf("exclusiveMinimum is not supported, treating as an inclusive minimum")
	}

	if s.ExclusiveMaximum != nil {
		sink.Warnf("exclusiveMaximum is not supported, treating as an inclusive maximum")
	}
}

func warnIf(sink diag.Sink, present bool, keyword string) {
	if present {
		sink.Warnf("%s is not supported, ignoring", keyword)
	}
}
