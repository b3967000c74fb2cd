// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package fusion

import "errors"

var (
	// ErrBadConditioning is returned when a conditioning payload is
	// not one of the recognized host shapes. Unlike the shapes it
	// tolerates, this is a hard failure: silently passing the input
	// through would hide a wiring mistake in the graph.
	ErrBadConditioning = errors.New("could not extract a token tensor from conditioning input")

	// ErrShapeMismatch is returned when the two conditioning inputs
	// disagree on batch size or embedding dimension.
	ErrShapeMismatch = errors.New("conditioning shapes are incompatible")
)
