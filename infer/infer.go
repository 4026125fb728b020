// Package infer implements the inferrer (component C3): folding one JSON
// value, or a stream of them, into a [schema.Schema] via per-node
// classification followed by [schema.Merge]. Values decode into a generic
// any-typed tree (using json.Number so integers and floats can be told
// apart), which a recursive walk folds node by node.
package infer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"runtime"
	"sync"

	"go.jacobcolvin.com/schemaforge/classify"
	"go.jacobcolvin.com/schemaforge/schema"
)

// Infer folds a single decoded JSON value into a schema. Warnings arise only
// when v contains, at any depth, an array whose elements merge to
// incompatible concrete types.
func Infer(v any) (schema.Schema, []string) {
	switch val := v.(type) {
	case nil:
		return schema.Null(), nil
	case bool:
		return schema.Boolean(), nil
	case json.Number:
		return inferNumber(val), nil
	case string:
		return schema.String(classify.Classify(val)), nil
	case []any:
		return inferArray(val)
	case map[string]any:
		return inferObject(val)
	default:
		// encoding/json with UseNumber never produces any other dynamic
		// type from a value position.
		return schema.Indefinite(), nil
	}
}

func inferNumber(n json.Number) schema.Schema {
	if i, err := n.Int64(); err == nil && !bytes.ContainsAny([]byte(n), ".eE") {
		return schema.Number(schema.Integer(i, i))
	}

	f, err := n.Float64()
	if err != nil {
		return schema.Indefinite()
	}

	return schema.Number(schema.Float(f, f))
}

func inferArray(val []any) (schema.Schema, []string) {
	if len(val) == 0 {
		return schema.NewArray(0, 0, schema.Indefinite()), nil
	}

	acc := schema.Initial()

	var warnings []string

	for _, elem := range val {
		elemSchema, w := Infer(elem)
		warnings = append(warnings, w...)

		var mw []string

		acc, mw = schema.Merge(acc, elemSchema)
		warnings = append(warnings, mw...)
	}

	return schema.NewArray(len(val), len(val), acc), warnings
}

func inferObject(val map[string]any) (schema.Schema, []string) {
	required := make(map[string]schema.Schema, len(val))

	var warnings []string

	for key, v := range val {
		fieldSchema, w := Infer(v)
		warnings = append(warnings, w...)
		required[key] = fieldSchema
	}

	return schema.NewObject(schema.NewObjectKind(required, map[string]schema.Schema{}, nil)), warnings
}

// InferStream folds a slice of already-decoded JSON values into a single
// schema, using all available CPUs for the associative fold (see
// [InferStreamConcurrency] to control worker count directly, e.g. in
// tests). An empty stream yields [schema.Indefinite].
func InferStream(values []any) (schema.Schema, []string) {
	return InferStreamConcurrency(values, runtime.GOMAXPROCS(0))
}

type chunkResult struct {
	schema   schema.Schema
	warnings []string
}

// InferStreamConcurrency folds values using at most workers goroutines (each
// touching a disjoint, contiguous slice of values), then reduces the
// per-worker partial schemas sequentially with [schema.Merge]. merge is
// associative, so the reduction order never changes the result regardless
// of chunking.
func InferStreamConcurrency(values []any, workers int) (schema.Schema, []string) {
	if len(values) == 0 {
		return schema.Indefinite(), nil
	}

	if workers < 1 {
		workers = 1
	}

	if workers > len(values) {
		workers = len(values)
	}

	chunkSize := (len(values) + workers - 1) / workers
	results := make([]chunkResult, workers)

	var wg sync.WaitGroup

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, len(values))

		if start >= end {
			continue
		}

		wg.Add(1)

		go func(i, start, end int) {
			defer wg.Done()

			acc := schema.Initial()

			var warnings []string

			for _, v := range values[start:end] {
				valueSchema, w := Infer(v)
				warnings = append(warnings, w...)

				var mw []string

				acc, mw = schema.Merge(acc, valueSchema)
				warnings = append(warnings, mw...)
			}

			results[i] = chunkResult{schema: acc, warnings: warnings}
		}(i, start, end)
	}

	wg.Wait()

	result := schema.Initial()

	var warnings []string

	for _, cr := range results {
		warnings = append(warnings, cr.warnings...)

		var mw []string

		result, mw = schema.Merge(result, cr.schema)
		warnings = append(warnings, mw...)
	}

	return result, warnings
}

// DecodeJSONLines reads whitespace/newline-separated JSON documents from r,
// decoding numbers as [json.Number] so [Infer] can distinguish integers
// from floats. A single JSON document (the common "describe one object"
// case) is just a one-element result.
func DecodeJSONLines(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()

	var values []any

	for {
		var v any

		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, nil
}
