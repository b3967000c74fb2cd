// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package datatypes defines the gateway's request and response
// payloads and their validation rules.
package datatypes

import (
	"github.com/go-playground/validator/v10"
)

var invokeValidate = validator.New()

// MaxInputBytes caps a single string input value. Prompts and data
// URIs both stay well under this.
const MaxInputBytes = 8 << 20

// InvokeRequest is the invocation payload for POST /v1/nodes/:name.
//
// Inputs carries the per-field values declared by the node's spec.
// Unknown keys are passed through untouched so hosts can attach
// metadata.
type InvokeRequest struct {
	Inputs map[string]any `json:"inputs" validate:"required,max=128"`
}

// Validate checks the request after JSON binding. Beyond the tag
// rules it rejects oversized string inputs before they reach a node.
func (r *InvokeRequest) Validate() error {
	if err := invokeValidate.Struct(r); err != nil {
		return err
	}
	for name, v := range r.Inputs {
		if s, ok := v.(string); ok && len(s) > MaxInputBytes {
			return &OversizedInputError{Field: name, Size: len(s)}
		}
	}
	return nil
}

// OversizedInputError reports a string input over MaxInputBytes.
type OversizedInputError struct {
	Field string
	Size  int
}

func (e *OversizedInputError) Error() string {
	return "input " + e.Field + " exceeds the size limit"
}

// InvokeResponse wraps a successful node invocation.
type InvokeResponse struct {
	Output any `json:"output"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
