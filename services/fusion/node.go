// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package fusion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atelierworks/easel/services/node"
)

// Fuse combines two conditioning signals. The second input is
// mean-pooled over its sequence dimension, L2-normalized, scaled by
// alpha, and added onto every token row of the first. alpha=0
// reproduces the first input unchanged; alpha=1 applies the full
// normalized mean.
//
// The first input's pooled output and metadata pass through untouched.
func Fuse(a, b *Conditioning, alpha float64) (*Conditioning, error) {
	_, _, aDim := a.Tokens.Shape()
	_, _, bDim := b.Tokens.Shape()
	if aDim != bDim {
		return nil, fmt.Errorf("%w: embedding dims %d vs %d", ErrShapeMismatch, aDim, bDim)
	}

	pooled := b.Tokens.MeanPool()
	l2Normalize(pooled)

	fused, err := addBroadcast(a.Tokens, pooled, alpha)
	if err != nil {
		return nil, err
	}

	return &Conditioning{
		Tokens: fused,
		Pooled: a.Pooled,
		form:   a.form,
		meta:   a.meta,
	}, nil
}

// Node blends two pre-computed conditioning tensors with a weight
// before they reach the diffusion backbone.
type Node struct{}

// NewNode creates the fusion node.
func NewNode() *Node { return &Node{} }

// Describe implements the node.Node interface.
func (n *Node) Describe() node.Spec {
	return node.Spec{
		Name:        "conditioning_fusion",
		DisplayName: "Easel: Conditioning Fusion",
		Category:    "Easel",
		Fields: []node.Field{
			{Name: "clip_conditioning", Kind: node.KindConditioning},
			{Name: "t5_conditioning", Kind: node.KindConditioning},
			{Name: "alpha", Kind: node.KindFloat, Default: 0.5, Min: node.FloatPtr(0), Max: node.FloatPtr(1), Step: 0.05},
		},
		Output:     node.KindConditioning,
		OutputName: "conditioning",
	}
}

// Apply implements the node.Node interface. Unrecognized conditioning
// shapes fail loudly; a fusion node that quietly returns its input
// unfused would poison the downstream image without a trace.
func (n *Node) Apply(ctx context.Context, in node.Inputs) (any, error) {
	alpha, err := node.FloatInput(in, "alpha")
	if err != nil {
		return nil, err
	}

	clip, err := Decode(in["clip_conditioning"])
	if err != nil {
		return nil, fmt.Errorf("clip_conditioning: %w", err)
	}
	t5, err := Decode(in["t5_conditioning"])
	if err != nil {
		return nil, fmt.Errorf("t5_conditioning: %w", err)
	}

	fused, err := Fuse(clip, t5, alpha)
	if err != nil {
		return nil, err
	}

	cb, cs, cd := clip.Tokens.Shape()
	slog.Debug("Fused conditioning", "alpha", alpha, "batch", cb, "seq", cs, "dim", cd)

	return fused.Encode(), nil
}

var _ node.Node = (*Node)(nil)
