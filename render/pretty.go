// Package render implements the renderer (component C6): emitting a
// [schema.Schema] as either deterministic indented human-readable text or a
// JSON Schema document. Object keys render in the object's Order, so a
// given schema always renders identically; two objects with the same keys
// and sub-schemas but a different Order (for example, merged in a
// different sequence) render their keys in different orders.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"go.jacobcolvin.com/schemaforge/schema"
)

const indentUnit = "  "

// Pretty renders s as deterministic, two-space-indented human-readable
// text. Leaves render as e.g. "int (7-30)", "string (uuid)",
// "string (5-8)", "bool", "null"; arrays as "[\n  <inner>\n] (lo-hi)";
// objects as "{\n  \"k\": <inner>,\n  …\n}"; nullable as "<inner> (nullable)".
func Pretty(s schema.Schema) string {
	var sb strings.Builder

	writePretty(&sb, s, 0, false)

	return sb.String()
}

func writePretty(sb *strings.Builder, s schema.Schema, depth int, optional bool) {
	switch s.Kind() {
	case schema.KindInitial, schema.KindIndefinite:
		sb.WriteString("any")
	case schema.KindNull:
		sb.WriteString("null")
	case schema.KindBoolean:
		sb.WriteString("bool")
	case schema.KindNumber:
		writePrettyNumber(sb, s.Number())
	case schema.KindString:
		writePrettyString(sb, s.Str())
	case schema.KindArray:
		writePrettyArray(sb, s.Array(), depth)
	case schema.KindObject:
		writePrettyObject(sb, s.Object(), depth)
	case schema.KindNullable:
		writePretty(sb, s.Inner(), depth, optional)
		sb.WriteString(" (nullable)")
	}
}

func writePrettyNumber(sb *strings.Builder, n schema.NumberKind) {
	if n.Float {
		fmt.Fprintf(sb, "float (%s-%s)", formatFloat(n.FloatMin), formatFloat(n.FloatMax))

		return
	}

	fmt.Fprintf(sb, "int (%d-%d)", n.IntMin, n.IntMax)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writePrettyString(sb *strings.Builder, k schema.StringKind) {
	switch k.Tag {
	case schema.TagUUID, schema.TagEmail, schema.TagURL, schema.TagHostname, schema.TagIsoDate, schema.TagIsoDateTime:
		fmt.Fprintf(sb, "string (%s)", k.Tag)
	case schema.TagEnum:
		fmt.Fprintf(sb, "string (enum: %s)", strings.Join(k.Enum, ", "))
	case schema.TagNumericString:
		fmt.Fprintf(sb, "string (numeric, %d-%d)", k.MinLen, k.MaxLen)
	case schema.TagUnknown:
		fmt.Fprintf(sb, "string (%d-%d)", k.MinLen, k.MaxLen)
	}
}

func writePrettyArray(sb *strings.Builder, a schema.ArrayKind, depth int) {
	sb.WriteString("[\n")
	sb.WriteString(strings.Repeat(indentUnit, depth+1))
	writePretty(sb, a.Item, depth+1, false)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(indentUnit, depth))
	sb.WriteByte(']')

	if a.MinLen == a.MaxLen {
		fmt.Fprintf(sb, " (%d)", a.MinLen)
	} else {
		fmt.Fprintf(sb, " (%d-%d)", a.MinLen, a.MaxLen)
	}
}

func writePrettyObject(sb *strings.Builder, o schema.ObjectKind, depth int) {
	if len(o.Order) == 0 {
		sb.WriteString("{}")

		return
	}

	sb.WriteString("{\n")

	for i, name := range o.Order {
		sb.WriteString(strings.Repeat(indentUnit, depth+1))
		fmt.Fprintf(sb, "%q: ", name)

		fieldSchema, required := o.Required[name]
		optional := false

		if !required {
			fieldSchema = o.Optional[name]
			optional = true
		}

		writePretty(sb, fieldSchema, depth+1, optional)

		if optional {
			sb.WriteString(" (optional)")
		}

		if i < len(o.Order)-1 {
			sb.WriteByte(',')
		}

		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat(indentUnit, depth))
	sb.WriteByte('}')
}
