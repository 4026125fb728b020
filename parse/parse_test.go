package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/schemaforge/diag"
	"go.jacobcolvin.com/schemaforge/parse"
	"go.jacobcolvin.com/schemaforge/schema"
)

func TestParse_Scalars(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc  string
		kind schema.Kind
	}{
		"boolean": {doc: `{"type":"boolean"}`, kind: schema.KindBoolean},
		"null":    {doc: `{"type":"null"}`, kind: schema.KindNull},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := parse.Parse([]byte(tc.doc), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, s.Kind())
		})
	}
}

func TestParse_IntegerWithBounds(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":"integer","minimum":1,"maximum":10}`), nil)
	require.NoError(t, err)
	assert.Equal(t, schema.Integer(1, 10), s.Number())
}

func TestParse_IntegerDefaultsBounds(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":"integer"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, schema.Integer(parse.DefaultIntMin, parse.DefaultIntMax), s.Number())
}

func TestParse_StringFormat(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":"string","format":"uuid"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, schema.TagUUID, s.Str().Tag)
}

func TestParse_StringEnum(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":"string","enum":["red","green","blue"]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green", "blue"}, s.Str().Enum)
}

func TestParse_EmptyEnumIsInvalidConstraint(t *testing.T) {
	t.Parallel()

	_, err := parse.Parse([]byte(`{"type":"string","enum":[]}`), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrEmptyEnum)
	assert.ErrorIs(t, err, schema.ErrInvalidConstraint)
}

func TestParse_MinGreaterThanMax(t *testing.T) {
	t.Parallel()

	_, err := parse.Parse([]byte(`{"type":"integer","minimum":10,"maximum":1}`), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMinGreaterThanMax)
}

func TestParse_MissingType(t *testing.T) {
	t.Parallel()

	_, err := parse.Parse([]byte(`{}`), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMissingType)
}

func TestParse_MissingItems(t *testing.T) {
	t.Parallel()

	_, err := parse.Parse([]byte(`{"type":"array"}`), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrMissingItems)
}

func TestParse_NullableViaTypeArray(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":["null","string"]}`), nil)
	require.NoError(t, err)
	require.Equal(t, schema.KindNullable, s.Kind())
	assert.Equal(t, schema.KindString, s.Inner().Kind())
}

func TestParse_NullableViaAnyOf(t *testing.T) {
	t.Parallel()

	doc := `{"anyOf":[{"type":"null"},{"type":"integer"}]}`

	s, err := parse.Parse([]byte(doc), nil)
	require.NoError(t, err)
	require.Equal(t, schema.KindNullable, s.Kind())
	assert.Equal(t, schema.KindNumber, s.Inner().Kind())
}

func TestParse_UnsupportedUnion(t *testing.T) {
	t.Parallel()

	doc := `{"anyOf":[{"type":"string"},{"type":"integer"}]}`

	_, err := parse.Parse([]byte(doc), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnsupportedUnion)
}

func TestParse_Object(t *testing.T) {
	t.Parallel()

	doc := `{
		"type":"object",
		"properties":{"id":{"type":"string","format":"uuid"},"nickname":{"type":"string"}},
		"required":["id"]
	}`

	s, err := parse.Parse([]byte(doc), nil)
	require.NoError(t, err)

	obj := s.Object()
	assert.Contains(t, obj.Required, "id")
	assert.Contains(t, obj.Optional, "nickname")
}

func TestParse_ObjectFallsBackToSortedKeysWithoutPropertyOrder(t *testing.T) {
	t.Parallel()

	doc := `{
		"type":"object",
		"properties":{"zeta":{"type":"boolean"},"alpha":{"type":"boolean"}},
		"required":["zeta","alpha"]
	}`

	s, err := parse.Parse([]byte(doc), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, s.Object().Order)
}

func TestParse_Array(t *testing.T) {
	t.Parallel()

	s, err := parse.Parse([]byte(`{"type":"array","items":{"type":"integer"},"minItems":1,"maxItems":5}`), nil)
	require.NoError(t, err)

	arr := s.Array()
	assert.Equal(t, 1, arr.MinLen)
	assert.Equal(t, 5, arr.MaxLen)
}

func TestParse_UnsupportedKeywordWarns(t *testing.T) {
	t.Parallel()

	collector := &diag.Collector{}

	_, err := parse.Parse([]byte(`{"type":"string","pattern":"^[a-z]+$"}`), collector)
	require.NoError(t, err)

	require.Len(t, collector.Messages, 1)
	assert.Contains(t, collector.Messages[0], "pattern")
}

func TestParse_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := parse.Parse([]byte(`{not json`), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
}

func TestParse_UnknownFormatWarnsAndFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	collector := &diag.Collector{}

	s, err := parse.Parse([]byte(`{"type":"string","format":"carrier-pigeon"}`), collector)
	require.NoError(t, err)
	assert.Equal(t, schema.UnknownString(parse.DefaultStrMin, parse.DefaultStrMax, nil), s.Str())

	require.Len(t, collector.Messages, 1)
	assert.Contains(t, collector.Messages[0], "carrier-pigeon")
}

func TestParse_ExclusiveBoundsTreatedAsInclusive(t *testing.T) {
	t.Parallel()

	collector := &diag.Collector{}

	doc := `{"type":"integer","exclusiveMinimum":5,"exclusiveMaximum":9}`

	s, err := parse.Parse([]byte(doc), collector)
	require.NoError(t, err)
	assert.Equal(t, schema.Integer(5, 9), s.Number())

	require.Len(t, collector.Messages, 2)
	assert.Contains(t, collector.Messages[0], "exclusiveMinimum")
	assert.Contains(t, collector.Messages[1], "exclusiveMaximum")
}
