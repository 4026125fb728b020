// Package generate implements the generator (component C5): sampling a
// random JSON value from a [schema.Schema]. [Generate] draws from a
// caller-supplied *rand.Rand, switches on the schema's kind and string
// format, and uses clamping helpers for numeric ranges. Word-corpus tokens
// for Email/Url come from github.com/go-faker/faker/v4.
package generate

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"

	"go.jacobcolvin.com/schemaforge/schema"
)

const lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"

var isoEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Generate samples one JSON value from s using rng. It never panics on any
// schema produced by parse or infer: every generated value's lengths,
// numbers, and enums stay within s's bounds.
func Generate(s schema.Schema, rng *rand.Rand) (any, error) {
	switch s.Kind() {
	case schema.KindInitial, schema.KindIndefinite, schema.KindNull:
		return nil, nil
	case schema.KindBoolean:
		return rng.Intn(2) == 1, nil
	case schema.KindNumber:
		return generateNumber(s.Number(), rng), nil
	case schema.KindString:
		return generateString(s.Str(), rng)
	case schema.KindArray:
		return generateArray(s.Array(), rng)
	case schema.KindObject:
		return generateObject(s.Object(), rng)
	case schema.KindNullable:
		if rng.Float64() < 0.5 {
			return nil, nil
		}

		return Generate(s.Inner(), rng)
	}

	return nil, nil
}

// Produce returns a JSON array of length n, each element independently
// generated from s. If s is itself an array schema, each element is in
// turn a JSON array — there is no separate "outer repeat" algorithm, just
// n independent calls to Generate.
func Produce(s schema.Schema, n int, rng *rand.Rand) ([]any, error) {
	out := make([]any, n)

	for i := range n {
		v, err := Generate(s, rng)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func generateNumber(n schema.NumberKind, rng *rand.Rand) any {
	if !n.Float {
		lo, hi := clampIntRange(n.IntMin, n.IntMax)
		if lo == hi {
			return lo
		}

		return lo + rng.Int63n(hi-lo+1)
	}

	lo, hi := clampFloatRange(n.FloatMin, n.FloatMax)
	if lo >= hi {
		return lo
	}

	return lo + rng.Float64()*(hi-lo)
}

// clampIntRange guards against a pathological (but invariant-respecting)
// range whose width would overflow int64 arithmetic.
func clampIntRange(lo, hi int64) (int64, int64) {
	if lo > hi {
		lo, hi = hi, lo
	}

	// hi-lo+1 fits in an int64 unless the range spans nearly all of int64.
	if uint64(hi)-uint64(lo) < math.MaxInt64 {
		return lo, hi
	}

	const safeBound = int64(1) << 61

	return max(lo, -safeBound), min(hi, safeBound)
}

// clampFloatRange guards against extreme bounds (e.g. near math.MaxFloat64)
// whose difference would overflow to +Inf.
func clampFloatRange(lo, hi float64) (float64, float64) {
	if lo > hi {
		lo, hi = hi, lo
	}

	if !math.IsInf(hi-lo, 0) {
		return lo, hi
	}

	const safeBound = 1e15

	return max(lo, -safeBound), min(hi, safeBound)
}

func generateString(k schema.StringKind, rng *rand.Rand) (any, error) {
	switch k.Tag {
	case schema.TagUUID:
		return generateUUID(rng), nil
	case schema.TagEmail:
		return fmt.Sprintf("%s@%s.%s", faker.Word(), faker.Word(), randomTLD(rng)), nil
	case schema.TagURL:
		return fmt.Sprintf("https://%s.%s/%s", faker.Word(), randomTLD(rng), faker.Word()), nil
	case schema.TagHostname:
		return generateHostname(rng), nil
	case schema.TagIsoDate:
		return generateISODate(rng).Format("2006-01-02"), nil
	case schema.TagIsoDateTime:
		return generateISODate(rng).Format(time.RFC3339), nil
	case schema.TagNumericString:
		return generateNumericString(k.MinLen, k.MaxLen, rng), nil
	case schema.TagEnum:
		if len(k.Enum) == 0 {
			return nil, fmt.Errorf("%w: empty enum at generation time", schema.ErrInvalidConstraint)
		}

		return k.Enum[rng.Intn(len(k.Enum))], nil
	case schema.TagUnknown:
		return generateUnknown(k, rng), nil
	}

	return "", nil
}

func randomTLD(rng *rand.Rand) string {
	tlds := []string{"com", "net", "org", "io"}

	return tlds[rng.Intn(len(tlds))]
}

func generateUUID(rng *rand.Rand) string {
	var b [16]byte

	rng.Read(b[:]) //nolint:errcheck // math/rand.Rand.Read never returns an error.

	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant

	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

func generateHostname(rng *rand.Rand) string {
	numLabels := 2 + rng.Intn(2) // 2 or 3

	labels := make([]string, numLabels)
	for i := range labels {
		labels[i] = randomLabel(rng, 3+rng.Intn(6))
	}

	return strings.Join(labels, ".")
}

func randomLabel(rng *rand.Rand, length int) string {
	const alphabet = lowerAlphabet + "0123456789"

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}

	return string(b)
}

func generateISODate(rng *rand.Rand) time.Time {
	const daysIn50Years = 50 * 365

	offset := rng.Intn(2*daysIn50Years+1) - daysIn50Years
	t := isoEpoch.AddDate(0, 0, offset)

	if rng.Intn(2) == 1 {
		t = t.Add(time.Duration(rng.Int63n(int64(24 * time.Hour))))
	}

	return t
}

func generateNumericString(lo, hi int, rng *rand.Rand) string {
	length := lo
	if hi > lo {
		length = lo + rng.Intn(hi-lo+1)
	}

	if length <= 0 {
		return "0"
	}

	b := make([]byte, length)

	for i := range b {
		if i == 0 && length > 1 {
			b[i] = byte('1' + rng.Intn(9))
		} else {
			b[i] = byte('0' + rng.Intn(10))
		}
	}

	return string(b)
}

func generateUnknown(k schema.StringKind, rng *rand.Rand) string {
	length := k.MinLen
	if k.MaxLen > k.MinLen {
		length = k.MinLen + rng.Intn(k.MaxLen-k.MinLen+1)
	}

	pool := flattenMultiset(k.CharsSeen)
	if len(pool) == 0 {
		pool = []rune(lowerAlphabet)
	}

	runes := make([]rune, length)
	for i := range runes {
		runes[i] = pool[rng.Intn(len(pool))]
	}

	return string(runes)
}

// flattenMultiset expands a rune->count multiset into a slice with each
// rune repeated by its observed count, so a uniform pick over the slice
// weights frequently observed characters accordingly.
func flattenMultiset(m map[rune]int) []rune {
	if len(m) == 0 {
		return nil
	}

	total := 0
	for _, n := range m {
		total += n
	}

	out := make([]rune, 0, total)
	for r, n := range m {
		for range n {
			out = append(out, r)
		}
	}

	return out
}

func generateArray(a schema.ArrayKind, rng *rand.Rand) (any, error) {
	length := a.MinLen
	if a.MaxLen > a.MinLen {
		length = a.MinLen + rng.Intn(a.MaxLen-a.MinLen+1)
	}

	out := make([]any, length)

	for i := range out {
		v, err := Generate(a.Item, rng)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func generateObject(o schema.ObjectKind, rng *rand.Rand) (any, error) {
	out := make(map[string]any, len(o.Required)+len(o.Optional))

	for _, name := range o.Order {
		if fieldSchema, ok := o.Required[name]; ok {
			v, err := Generate(fieldSchema, rng)
			if err != nil {
				return nil, err
			}

			out[name] = v

			continue
		}

		if fieldSchema, ok := o.Optional[name]; ok && rng.Float64() < 0.5 {
			v, err := Generate(fieldSchema, rng)
			if err != nil {
				return nil, err
			}

			out[name] = v
		}
	}

	return out, nil
}
