package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/schemaforge/render"
	"go.jacobcolvin.com/schemaforge/schema"
	"go.jacobcolvin.com/schemaforge/stringtest"
)

// TestPretty_FlatObject covers the "describe a flat object" scenario:
// name is string (8-8), age is int (30-30), is_student is bool,
// grades is [int (78-90)] (3), id is string (uuid).
func TestPretty_FlatObject(t *testing.T) {
	t.Parallel()

	o := schema.NewObjectKind(map[string]schema.Schema{
		"name":       schema.String(schema.UnknownString(8, 8, map[rune]int{'J': 1, 'o': 2, 'h': 1, 'n': 1, ' ': 1, 'D': 1, 'e': 1})),
		"age":        schema.Number(schema.Integer(30, 30)),
		"is_student": schema.Boolean(),
		"grades":     schema.NewArray(3, 3, schema.Number(schema.Integer(78, 90))),
		"id":         schema.String(schema.Tagged(schema.TagUUID)),
	}, map[string]schema.Schema{}, nil)

	got := render.Pretty(schema.NewObject(o))

	want := stringtest.JoinLF(
		`{`,
		`  "age": int (30-30),`,
		`  "grades": [`,
		`    int (78-90)`,
		`  ] (3),`,
		`  "id": string (uuid),`,
		`  "is_student": bool,`,
		`  "name": string (8-8)`,
		`}`,
	)

	assert.Equal(t, want, got)
}

func TestPretty_Scalars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "any", render.Pretty(schema.Initial()))
	assert.Equal(t, "any", render.Pretty(schema.Indefinite()))
	assert.Equal(t, "null", render.Pretty(schema.Null()))
	assert.Equal(t, "bool", render.Pretty(schema.Boolean()))
	assert.Equal(t, "int (1-1)", render.Pretty(schema.Number(schema.Integer(1, 1))))
	assert.Equal(t, "float (1.5-2.5)", render.Pretty(schema.Number(schema.Float(1.5, 2.5))))
}

func TestPretty_StringVariants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string (email)", render.Pretty(schema.String(schema.Tagged(schema.TagEmail))))
	assert.Equal(t, "string (numeric, 2-4)", render.Pretty(schema.String(schema.NumericString(2, 4))))
	assert.Equal(t, "string (enum: a, b)", render.Pretty(schema.String(schema.EnumString([]string{"a", "b"}))))
	assert.Equal(t, "string (3-3)", render.Pretty(schema.String(schema.UnknownString(3, 3, nil))))
}

func TestPretty_NullableAppendsSuffix(t *testing.T) {
	t.Parallel()

	got := render.Pretty(schema.Nullable(schema.Boolean()))
	assert.Equal(t, "bool (nullable)", got)
}

func TestPretty_OptionalFieldSuffix(t *testing.T) {
	t.Parallel()

	o := schema.NewObjectKind(
		map[string]schema.Schema{"id": schema.Boolean()},
		map[string]schema.Schema{"nickname": schema.String(schema.UnknownString(1, 3, nil))},
		[]string{"id", "nickname"},
	)

	got := render.Pretty(schema.NewObject(o))

	want := stringtest.JoinLF(
		`{`,
		`  "id": bool,`,
		`  "nickname": string (1-3) (optional)`,
		`}`,
	)

	assert.Equal(t, want, got)
}

func TestPretty_EmptyObject(t *testing.T) {
	t.Parallel()

	got := render.Pretty(schema.NewObject(schema.NewObjectKind(nil, nil, nil)))
	assert.Equal(t, "{}", got)
}

func TestPretty_ArrayEqualBoundsShowsSingleCount(t *testing.T) {
	t.Parallel()

	got := render.Pretty(schema.NewArray(2, 2, schema.Boolean()))

	want := stringtest.JoinLF(
		`[`,
		`  bool`,
		`] (2)`,
	)

	assert.Equal(t, want, got)
}

func TestPretty_ArrayRangeBoundsShowsRange(t *testing.T) {
	t.Parallel()

	got := render.Pretty(schema.NewArray(1, 3, schema.Boolean()))

	want := stringtest.JoinLF(
		`[`,
		`  bool`,
		`] (1-3)`,
	)

	assert.Equal(t, want, got)
}
