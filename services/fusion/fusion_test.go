// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package fusion

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierworks/easel/services/node"
)

// anyTensor converts a Tensor into the []any nesting JSON decoding
// would produce.
func anyTensor(t Tensor) []any {
	return tensorToAny(t)
}

// unitTensor builds a batch×seq×dim tensor with every value v.
func unitTensor(batch, seq, dim int, v float64) Tensor {
	out := make(Tensor, batch)
	for b := 0; b < batch; b++ {
		out[b] = make([][]float64, seq)
		for s := 0; s < seq; s++ {
			row := make([]float64, dim)
			for d := 0; d < dim; d++ {
				row[d] = v
			}
			out[b][s] = row
		}
	}
	return out
}

func TestMeanPool(t *testing.T) {
	tokens := Tensor{{
		{1, 2},
		{3, 4},
		{5, 6},
	}}
	pooled := tokens.MeanPool()
	require.Len(t, pooled, 1)
	assert.InDelta(t, 3, pooled[0][0], 1e-12)
	assert.InDelta(t, 4, pooled[0][1], 1e-12)
}

func TestL2Normalize(t *testing.T) {
	vecs := [][]float64{{3, 4}}
	l2Normalize(vecs)
	assert.InDelta(t, 0.6, vecs[0][0], 1e-6)
	assert.InDelta(t, 0.8, vecs[0][1], 1e-6)

	var norm float64
	for _, v := range vecs[0] {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestFuseAlphaZeroIsIdentity(t *testing.T) {
	a, err := Decode(anyTensor(unitTensor(1, 4, 8, 0.25)))
	require.NoError(t, err)
	b, err := Decode(anyTensor(unitTensor(1, 9, 8, 0.9)))
	require.NoError(t, err)

	fused, err := Fuse(a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, a.Tokens, fused.Tokens, "alpha=0 reproduces the first input")
}

func TestFuseAlphaOneAddsNormalizedMean(t *testing.T) {
	a, err := Decode(anyTensor(unitTensor(1, 4, 2, 1.0)))
	require.NoError(t, err)
	// Second input mean-pools to (3, 4), which normalizes to (0.6, 0.8).
	bTokens := Tensor{{
		{2, 3},
		{4, 5},
	}}
	b, err := Decode(anyTensor(bTokens))
	require.NoError(t, err)

	fused, err := Fuse(a, b, 1)
	require.NoError(t, err)

	for s := 0; s < 4; s++ {
		assert.InDelta(t, 1.0+0.6, fused.Tokens[0][s][0], 1e-6)
		assert.InDelta(t, 1.0+0.8, fused.Tokens[0][s][1], 1e-6)
	}
}

func TestFuseBroadcastsAcrossAllRows(t *testing.T) {
	a, err := Decode(anyTensor(unitTensor(1, 77, 8, 0)))
	require.NoError(t, err)
	b, err := Decode(anyTensor(unitTensor(1, 12, 8, 0.5)))
	require.NoError(t, err)

	fused, err := Fuse(a, b, 0.5)
	require.NoError(t, err)

	first := fused.Tokens[0][0]
	for s := 1; s < 77; s++ {
		assert.Equal(t, first, fused.Tokens[0][s], "every row receives the same shift")
	}
}

func TestFuseDimMismatch(t *testing.T) {
	a, _ := Decode(anyTensor(unitTensor(1, 4, 8, 1)))
	b, _ := Decode(anyTensor(unitTensor(1, 4, 16, 1)))

	_, err := Fuse(a, b, 0.5)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFuseBatchMismatch(t *testing.T) {
	a, _ := Decode(anyTensor(unitTensor(2, 4, 8, 1)))
	b, _ := Decode(anyTensor(unitTensor(1, 4, 8, 1)))

	_, err := Fuse(a, b, 0.5)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDecodeBareTensor(t *testing.T) {
	c, err := Decode(anyTensor(unitTensor(1, 3, 4, 0.5)))
	require.NoError(t, err)

	batch, seq, dim := c.Tokens.Shape()
	assert.Equal(t, []int{1, 3, 4}, []int{batch, seq, dim})
	assert.Equal(t, zeroVectors(1, 4), c.Pooled, "missing pooled defaults to zeros")
}

func TestDecode2DPromotedToBatch(t *testing.T) {
	// seq × dim without a batch axis.
	flat := []any{
		[]any{1.0, 2.0},
		[]any{3.0, 4.0},
	}
	c, err := Decode(flat)
	require.NoError(t, err)

	batch, seq, dim := c.Tokens.Shape()
	assert.Equal(t, []int{1, 2, 2}, []int{batch, seq, dim})
}

func TestDecodeNestedFormWithPooled(t *testing.T) {
	tokens := anyTensor(unitTensor(1, 3, 2, 0.5))
	meta := map[string]any{
		"pooled_output": []any{[]any{7.0, 8.0}},
		"strength":      1.0,
	}
	payload := []any{[]any{tokens, meta}}

	c, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{7, 8}}, c.Pooled)

	// Encode echoes the nested structure and metadata untouched.
	encoded, ok := c.Encode().([]any)
	require.True(t, ok)
	require.Len(t, encoded, 1)
	inner := encoded[0].([]any)
	require.Len(t, inner, 2)
	assert.Equal(t, meta, inner[1])
}

func TestDecodePairForm(t *testing.T) {
	tokens := anyTensor(unitTensor(1, 3, 2, 0.5))
	pooled := []any{[]any{1.0, 2.0}}

	c, err := Decode([]any{any(tokens), any(pooled)})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}}, c.Pooled)

	encoded := c.Encode().([]any)
	require.Len(t, encoded, 2)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := map[string]any{
		"nil":         nil,
		"string":      "conditioning",
		"number":      3.0,
		"empty list":  []any{},
		"flat floats": []any{1.0, 2.0, 3.0},
		"ragged rows": []any{
			[]any{[]any{1.0, 2.0}, []any{1.0}},
		},
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(v)
			assert.ErrorIs(t, err, ErrBadConditioning)
		})
	}
}

func TestNodeApplyFailsLoudOnBadShape(t *testing.T) {
	n := NewNode()
	_, err := n.Apply(context.Background(), node.Inputs{
		"clip_conditioning": "garbage",
		"t5_conditioning":   anyTensor(unitTensor(1, 2, 4, 1)),
		"alpha":             0.5,
	})
	require.ErrorIs(t, err, ErrBadConditioning)
	assert.Contains(t, err.Error(), "clip_conditioning")
}

func TestNodeApplyFusesAndEncodes(t *testing.T) {
	n := NewNode()
	out, err := n.Apply(context.Background(), node.Inputs{
		"clip_conditioning": anyTensor(unitTensor(1, 4, 2, 1)),
		"t5_conditioning":   anyTensor(unitTensor(1, 4, 2, 1)),
		"alpha":             0.0,
	})
	require.NoError(t, err)

	encoded, ok := out.([]any)
	require.True(t, ok)
	require.Len(t, encoded, 2, "bare input encodes as [tokens, pooled]")

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, unitTensor(1, 4, 2, 1), decoded.Tokens)
}

func TestNodeSpec(t *testing.T) {
	spec := NewNode().Describe()
	assert.Equal(t, "conditioning_fusion", spec.Name)
	assert.Equal(t, node.KindConditioning, spec.Output)

	validated, err := node.ValidateInputs(spec, node.Inputs{
		"clip_conditioning": anyTensor(unitTensor(1, 2, 2, 0)),
		"t5_conditioning":   anyTensor(unitTensor(1, 2, 2, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, validated["alpha"])

	_, err = node.ValidateInputs(spec, node.Inputs{
		"clip_conditioning": anyTensor(unitTensor(1, 2, 2, 0)),
		"t5_conditioning":   anyTensor(unitTensor(1, 2, 2, 0)),
		"alpha":             1.5,
	})
	assert.ErrorIs(t, err, node.ErrInvalidInput)
}
