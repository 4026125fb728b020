package schema

import (
	"errors"
	"fmt"
)

// === Core error taxonomy ===
//
// Every failure the algebra surfaces wraps one of these four sentinels, so
// callers can classify an error with errors.Is without parsing messages.

var (
	// ErrInvalidSchema marks a malformed JSON Schema document: a missing
	// type/items, a type shape that isn't recognized, or an unsupported
	// combination of type/anyOf/oneOf.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnsupportedFeature marks an explicit refusal: a feature the
	// parser will not pretend to support, such as a non-nullable anyOf or
	// a $ref.
	ErrUnsupportedFeature = errors.New("unsupported feature")
	// ErrInvalidConstraint marks a structurally valid but semantically
	// impossible constraint: min > max on any range, an empty enum, or an
	// empty type array.
	ErrInvalidConstraint = errors.New("invalid constraint")
	// ErrTypeMismatch marks two incompatible concrete schemas merged
	// (e.g. Boolean vs Number, Object vs Array).
	ErrTypeMismatch = errors.New("type mismatch in merge")
)

// === Narrower sentinels, each wrapping one of the categories above ===

var (
	// ErrMissingType wraps ErrInvalidSchema: a schema node has no type,
	// anyOf, or oneOf keyword.
	ErrMissingType = fmt.Errorf("%w: schema has no type, anyOf, or oneOf", ErrInvalidSchema)
	// ErrMissingItems wraps ErrInvalidSchema: an array node has no items
	// keyword.
	ErrMissingItems = fmt.Errorf("%w: array schema has no items", ErrInvalidSchema)
	// ErrUnknownType wraps ErrInvalidSchema: a type string isn't one of
	// the seven JSON Schema primitive types.
	ErrUnknownType = fmt.Errorf("%w: unknown schema type", ErrInvalidSchema)
	// ErrUnsupportedUnion wraps ErrUnsupportedFeature: an anyOf/oneOf that
	// isn't exactly {sub-schema, {type: null}}.
	ErrUnsupportedUnion = fmt.Errorf("%w: anyOf/oneOf is only supported as a nullable union", ErrUnsupportedFeature)
	// ErrMinGreaterThanMax wraps ErrInvalidConstraint: a length or numeric
	// range with min > max.
	ErrMinGreaterThanMax = fmt.Errorf("%w: minimum is greater than maximum", ErrInvalidConstraint)
	// ErrEmptyEnum wraps ErrInvalidConstraint: an enum keyword with zero
	// values.
	ErrEmptyEnum = fmt.Errorf("%w: enum is empty", ErrInvalidConstraint)
)
