// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package fusion

import "fmt"

// form records which structural shape a conditioning payload arrived
// in, so the fused result can be returned the same way.
type form int

const (
	formBare   form = iota // a bare token tensor
	formNested             // [[tokens, metadata]]
	formPair               // [tokens, pooled]
)

// Conditioning is a decoded conditioning signal: a token tensor, an
// optional pooled vector per batch entry, and any host metadata that
// has to be echoed back.
type Conditioning struct {
	Tokens Tensor
	Pooled [][]float64

	form form
	meta map[string]any
}

// Decode interprets a host conditioning payload. Hosts emit several
// structural variants of the same data; all of these are accepted:
//
//   - [[tokens, {pooled_output: ...}]]  (nested list with metadata)
//   - [tokens, pooled]                  (pair)
//   - tokens                            (bare 3D tensor)
//   - [tokens]                          (single-element list)
//
// A 2D tokens tensor (seq × dim) is promoted to batch size 1. Any
// other shape is ErrBadConditioning.
func Decode(v any) (*Conditioning, error) {
	arr, isList := v.([]any)

	// Bare tensor: parses directly as a token tensor.
	if tokens, ok := parseTensor(v); ok {
		return withDefaultPooled(&Conditioning{Tokens: tokens, form: formBare}), nil
	}

	if !isList || len(arr) == 0 {
		return nil, ErrBadConditioning
	}

	// Nested list: [[tokens, metadata]].
	if len(arr) == 1 {
		if inner, ok := arr[0].([]any); ok && len(inner) == 2 {
			if meta, ok := inner[1].(map[string]any); ok {
				tokens, ok := parseTensor(inner[0])
				if !ok {
					return nil, fmt.Errorf("%w: nested entry is not a tensor", ErrBadConditioning)
				}
				c := &Conditioning{Tokens: tokens, form: formNested, meta: meta}
				if pooled, ok := parseMatrix(meta["pooled_output"]); ok {
					c.Pooled = pooled
				}
				return withDefaultPooled(c), nil
			}
		}

		// Single-element list holding a tensor.
		if tokens, ok := parseTensor(arr[0]); ok {
			return withDefaultPooled(&Conditioning{Tokens: tokens, form: formBare}), nil
		}
		return nil, ErrBadConditioning
	}

	// Pair: [tokens, pooled].
	if tokens, ok := parseTensor(arr[0]); ok {
		c := &Conditioning{Tokens: tokens, form: formPair}
		if pooled, ok := parseMatrix(arr[1]); ok {
			c.Pooled = pooled
		}
		return withDefaultPooled(c), nil
	}

	return nil, ErrBadConditioning
}

// withDefaultPooled fills a missing pooled output with zeros matching
// the token dim.
func withDefaultPooled(c *Conditioning) *Conditioning {
	if c.Pooled == nil {
		batch, _, dim := c.Tokens.Shape()
		c.Pooled = zeroVectors(batch, dim)
	}
	return c
}

// Encode re-emits the conditioning in the structural form it arrived
// in: the nested form keeps its metadata untouched, everything else
// becomes a [tokens, pooled] pair.
func (c *Conditioning) Encode() any {
	tokens := tensorToAny(c.Tokens)
	if c.form == formNested {
		return []any{[]any{tokens, c.meta}}
	}
	return []any{tokens, matrixToAny(c.Pooled)}
}

// parseTensor accepts a 3D nested array, or a 2D one promoted to
// batch size 1. Ragged or non-numeric input is rejected.
func parseTensor(v any) (Tensor, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}

	// 2D tensor: rows of numbers.
	if m, ok := parseMatrix(v); ok {
		return Tensor{m}, true
	}

	out := make(Tensor, len(arr))
	var seq, dim = -1, -1
	for i, bv := range arr {
		m, ok := parseMatrix(bv)
		if !ok {
			return nil, false
		}
		if seq == -1 {
			seq, dim = len(m), len(m[0])
		} else if len(m) != seq || len(m[0]) != dim {
			return nil, false
		}
		out[i] = m
	}
	return out, true
}

// parseMatrix accepts a 2D nested numeric array.
func parseMatrix(v any) ([][]float64, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}

	out := make([][]float64, len(arr))
	width := -1
	for i, rv := range arr {
		row, ok := parseVector(rv)
		if !ok {
			return nil, false
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, false
		}
		out[i] = row
	}
	if width == 0 {
		return nil, false
	}
	return out, true
}

func parseVector(v any) ([]float64, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(arr))
	for i, nv := range arr {
		switch n := nv.(type) {
		case float64:
			out[i] = n
		case float32:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		default:
			return nil, false
		}
	}
	return out, true
}

func tensorToAny(t Tensor) []any {
	out := make([]any, len(t))
	for i, m := range t {
		out[i] = matrixToAny(m)
	}
	return out
}

func matrixToAny(m [][]float64) []any {
	out := make([]any, len(m))
	for i, row := range m {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		out[i] = vals
	}
	return out
}
