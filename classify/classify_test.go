package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/schemaforge/classify"
	"go.jacobcolvin.com/schemaforge/schema"
)

func TestClassify_Formats(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		tag   schema.StringTag
	}{
		"uuid": {
			input: "0e3a99a5-0201-4444-9ab1-8343fac56233",
			tag:   schema.TagUUID,
		},
		"email": {
			input: "jane.doe@example.com",
			tag:   schema.TagEmail,
		},
		"url": {
			input: "https://example.com/path?q=1",
			tag:   schema.TagURL,
		},
		"iso date-time": {
			input: "2024-01-02T15:04:05Z",
			tag:   schema.TagIsoDateTime,
		},
		"iso date": {
			input: "2024-01-02",
			tag:   schema.TagIsoDate,
		},
		"hostname": {
			input: "api.example.com",
			tag:   schema.TagHostname,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			k := classify.Classify(tc.input)
			assert.Equal(t, tc.tag, k.Tag)
		})
	}
}

func TestClassify_NumericString(t *testing.T) {
	t.Parallel()

	k := classify.Classify("90210")

	assert.Equal(t, schema.TagNumericString, k.Tag)
	assert.Equal(t, 5, k.MinLen)
	assert.Equal(t, 5, k.MaxLen)
}

func TestClassify_NegativeNumericString(t *testing.T) {
	t.Parallel()

	k := classify.Classify("-42")

	assert.Equal(t, schema.TagNumericString, k.Tag)
}

func TestClassify_UnknownFallsBackWithCharMultiset(t *testing.T) {
	t.Parallel()

	k := classify.Classify("Hello!!")

	assert.Equal(t, schema.TagUnknown, k.Tag)
	assert.Equal(t, 7, k.MinLen)
	assert.Equal(t, 7, k.MaxLen)
	assert.Equal(t, 2, k.CharsSeen['!'])
}

// TestClassify_UUIDNotTakenForHostname checks that a UUID classifies as
// UUID. Its hex groups and dashes are valid hostname label characters, but
// with no dot it is a single label, which the hostname rule (two or more
// labels) rejects in any case.
func TestClassify_UUIDNotTakenForHostname(t *testing.T) {
	t.Parallel()

	k := classify.Classify("0e3a99a5-0201-4444-9ab1-8343fac56233")

	assert.Equal(t, schema.TagUUID, k.Tag)
}

// TestClassify_PrecedenceNumericBeforeISODate checks that a bare numeric
// string isn't accidentally parsed as a date by time.Parse leniency.
func TestClassify_PrecedenceNumericBeforeISODate(t *testing.T) {
	t.Parallel()

	k := classify.Classify("2024010203")

	assert.Equal(t, schema.TagNumericString, k.Tag)
}

func TestClassify_EmailRejectsWhitespace(t *testing.T) {
	t.Parallel()

	k := classify.Classify("jane doe@example.com")

	assert.NotEqual(t, schema.TagEmail, k.Tag)
}

func TestClassify_HostnameRejectsLeadingHyphenLabel(t *testing.T) {
	t.Parallel()

	k := classify.Classify("-bad.example.com")

	assert.NotEqual(t, schema.TagHostname, k.Tag)
}
