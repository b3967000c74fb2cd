// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package fusion arithmetically combines two conditioning tensors
// before they are consumed by an image-diffusion backbone: the second
// input is mean-pooled to one vector per batch entry, L2-normalized,
// and broadcast-added onto every token row of the first input, scaled
// by a blend weight.
package fusion

import (
	"fmt"
	"math"
)

// normEpsilon guards the L2 norm against division by zero.
const normEpsilon = 1e-8

// Tensor is a batch × sequence × dim token tensor.
type Tensor [][][]float64

// Shape returns (batch, seq, dim). A nil tensor is (0, 0, 0).
func (t Tensor) Shape() (batch, seq, dim int) {
	if len(t) == 0 || len(t[0]) == 0 {
		return len(t), 0, 0
	}
	return len(t), len(t[0]), len(t[0][0])
}

// MeanPool averages over the sequence dimension, returning one vector
// per batch entry.
func (t Tensor) MeanPool() [][]float64 {
	batch, seq, dim := t.Shape()
	out := make([][]float64, batch)
	for b := 0; b < batch; b++ {
		vec := make([]float64, dim)
		for s := 0; s < seq; s++ {
			for d := 0; d < dim; d++ {
				vec[d] += t[b][s][d]
			}
		}
		if seq > 0 {
			for d := 0; d < dim; d++ {
				vec[d] /= float64(seq)
			}
		}
		out[b] = vec
	}
	return out
}

// l2Normalize scales each vector to unit length in place.
func l2Normalize(vecs [][]float64) {
	for _, vec := range vecs {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		norm := math.Sqrt(sum) + normEpsilon
		for i := range vec {
			vec[i] /= norm
		}
	}
}

// addBroadcast returns t + alpha*vecs, with vecs[b] added to every
// sequence row of batch entry b. t is not modified.
func addBroadcast(t Tensor, vecs [][]float64, alpha float64) (Tensor, error) {
	batch, seq, dim := t.Shape()
	if len(vecs) != batch {
		return nil, fmt.Errorf("%w: batch %d vs %d", ErrShapeMismatch, batch, len(vecs))
	}

	out := make(Tensor, batch)
	for b := 0; b < batch; b++ {
		if len(vecs[b]) != dim {
			return nil, fmt.Errorf("%w: dim %d vs %d", ErrShapeMismatch, dim, len(vecs[b]))
		}
		out[b] = make([][]float64, seq)
		for s := 0; s < seq; s++ {
			row := make([]float64, dim)
			for d := 0; d < dim; d++ {
				row[d] = t[b][s][d] + alpha*vecs[b][d]
			}
			out[b][s] = row
		}
	}
	return out, nil
}

// zeroVectors returns batch zero vectors of the given dim, used as a
// stand-in pooled output when the host omits one.
func zeroVectors(batch, dim int) [][]float64 {
	out := make([][]float64, batch)
	for b := range out {
		out[b] = make([]float64, dim)
	}
	return out
}
