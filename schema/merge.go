package schema

import "fmt"

// Merge combines a and b into a single schema. It is total and
// associative, so chunked reduction order never changes the result. It is
// commutative except for incompatible-type merges, which keep the left
// side, and except for ordering: object key order and enum value order
// list a's entries first. The returned slice holds one diagnostic per
// incompatible-type merge encountered while combining a and b, at any
// depth (an object merge can yield one per field); callers route these to
// a diagnostic sink rather than treating them as fatal, per
// [ErrTypeMismatch]'s "left wins with a warning" policy.
func Merge(a, b Schema) (Schema, []string) {
	if a.kind == KindInitial {
		return b, nil
	}

	if b.kind == KindInitial {
		return a, nil
	}

	if a.kind == KindIndefinite {
		return b, nil
	}

	if b.kind == KindIndefinite {
		return a, nil
	}

	if a.kind == KindNull && b.kind == KindNull {
		return Null(), nil
	}

	if a.kind == KindNull && b.kind == KindNullable {
		return b, nil
	}

	if b.kind == KindNull && a.kind == KindNullable {
		return a, nil
	}

	if a.kind == KindNull {
		return Nullable(b), nil
	}

	if b.kind == KindNull {
		return Nullable(a), nil
	}

	if a.kind == KindNullable && b.kind == KindNullable {
		inner, warnings := Merge(a.Inner(), b.Inner())

		return Nullable(inner), warnings
	}

	if a.kind == KindNullable {
		inner, warnings := Merge(a.Inner(), b)

		return Nullable(inner), warnings
	}

	if b.kind == KindNullable {
		inner, warnings := Merge(a, b.Inner())

		return Nullable(inner), warnings
	}

	if a.kind != b.kind {
		return a, []string{fmt.Sprintf(
			"type mismatch in merge: %s vs %s, keeping left side", a.kind, b.kind,
		)}
	}

	switch a.kind {
	case KindBoolean:
		return Boolean(), nil
	case KindNumber:
		return Number(mergeNum(a.number, b.number)), nil
	case KindString:
		return String(mergeStr(a.str, b.str)), nil
	case KindArray:
		array, warnings := mergeArray(a.array, b.array)

		return Schema{kind: KindArray, array: array}, warnings
	case KindObject:
		object, warnings := mergeObject(a.object, b.object)

		return Schema{kind: KindObject, object: object}, warnings
	case KindInitial, KindIndefinite, KindNull, KindNullable:
		// Unreachable: handled above.
		return a, nil
	}

	return a, nil
}

// mergeNum implements spec's mergeNum: same-kind ranges combine
// elementwise; a mixed Integer/Float pair widens to Float.
func mergeNum(a, b NumberKind) NumberKind {
	if !a.Float && !b.Float {
		return Integer(min(a.IntMin, b.IntMin), max(a.IntMax, b.IntMax))
	}

	if a.Float && b.Float {
		return Float(min(a.FloatMin, b.FloatMin), max(a.FloatMax, b.FloatMax))
	}

	af, bf := widenToFloat(a), widenToFloat(b)

	return Float(min(af.FloatMin, bf.FloatMin), max(af.FloatMax, bf.FloatMax))
}

func widenToFloat(n NumberKind) NumberKind {
	if n.Float {
		return n
	}

	return Float(float64(n.IntMin), float64(n.IntMax))
}

// mergeStr implements spec's mergeStr table.
func mergeStr(a, b StringKind) StringKind {
	if a.Tag == b.Tag {
		switch a.Tag {
		case TagUUID, TagEmail, TagURL, TagHostname, TagIsoDate, TagIsoDateTime:
			return a
		case TagNumericString:
			return NumericString(min(a.MinLen, b.MinLen), max(a.MaxLen, b.MaxLen))
		case TagUnknown:
			return UnknownString(
				min(a.MinLen, b.MinLen), max(a.MaxLen, b.MaxLen),
				unionChars(a.CharsSeen, b.CharsSeen),
			)
		case TagEnum:
			return EnumString(append(append([]string{}, a.Enum...), b.Enum...))
		}
	}

	// Any other mix: Unknown with widened lengths, treating each side's
	// canonical form as observed characters.
	aChars, aMin, aMax := observedChars(a)
	bChars, bMin, bMax := observedChars(b)

	return UnknownString(min(aMin, bMin), max(aMax, bMax), unionChars(aChars, bChars))
}

// observedChars derives a length range and character multiset for a string
// kind that doesn't already carry one (i.e. any kind other than Unknown),
// so mergeStr can fall back to Unknown uniformly.
func observedChars(k StringKind) (map[rune]int, int, int) {
	if k.Tag == TagUnknown {
		return k.CharsSeen, k.MinLen, k.MaxLen
	}

	if k.Tag == TagNumericString {
		return nil, k.MinLen, k.MaxLen
	}

	if k.Tag == TagEnum {
		chars := map[rune]int{}
		minLen, maxLen := 0, 0

		for i, v := range k.Enum {
			for _, r := range v {
				chars[r]++
			}

			if i == 0 || len(v) < minLen {
				minLen = len(v)
			}

			if len(v) > maxLen {
				maxLen = len(v)
			}
		}

		return chars, minLen, maxLen
	}

	// Format-tagged kinds (Uuid/Email/Url/Hostname/IsoDate/IsoDateTime)
	// carry no stored sample, so contribute an empty multiset and a
	// length range of zero; the widened length range still reflects the
	// other side's observations.
	return nil, 0, 0
}

// unionChars returns the multiset union of a and b: for each rune, the
// greater of its two multiplicities. Using max (not sum) keeps merge
// idempotent: unionChars(m, m) == m.
func unionChars(a, b map[rune]int) map[rune]int {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	out := make(map[rune]int, max(len(a), len(b)))

	for r, n := range a {
		out[r] = n
	}

	for r, n := range b {
		if n > out[r] {
			out[r] = n
		}
	}

	return out
}

func mergeArray(a, b ArrayKind) (ArrayKind, []string) {
	item, warnings := Merge(a.Item, b.Item)

	return ArrayKind{
		MinLen: min(a.MinLen, b.MinLen),
		MaxLen: max(a.MaxLen, b.MaxLen),
		Item:   item,
	}, warnings
}

func mergeObject(a, b ObjectKind) (ObjectKind, []string) {
	required := map[string]Schema{}
	optional := map[string]Schema{}

	var warnings []string

	order := make([]string, 0, len(a.Order)+len(b.Order))
	seen := map[string]struct{}{}

	addOrder := func(keys []string) {
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}

			seen[k] = struct{}{}

			order = append(order, k)
		}
	}

	addOrder(a.Order)
	addOrder(b.Order)

	for _, key := range order {
		_, aReq := a.Required[key]
		_, bReq := b.Required[key]

		av, aOK := a.Required[key]
		if !aOK {
			av, aOK = a.Optional[key]
		}

		bv, bOK := b.Required[key]
		if !bOK {
			bv, bOK = b.Optional[key]
		}

		if !aOK {
			av = Initial()
		}

		if !bOK {
			bv = Initial()
		}

		merged, w := Merge(av, bv)
		warnings = append(warnings, w...)

		if aReq && bReq {
			required[key] = merged
		} else {
			optional[key] = merged
		}
	}

	return ObjectKind{Required: required, Optional: optional, Order: order}, warnings
}
