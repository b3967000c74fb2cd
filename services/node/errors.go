// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package node

import "errors"

var (
	// ErrUnknownNode is returned when a node name is not registered.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNode is returned when registering a name twice.
	ErrDuplicateNode = errors.New("node already registered")

	// ErrMissingInput is returned when a required input has no value
	// and its field declares no default.
	ErrMissingInput = errors.New("missing required input")

	// ErrInvalidInput is returned when an input value fails its
	// field's type or range constraints.
	ErrInvalidInput = errors.New("invalid input")
)
