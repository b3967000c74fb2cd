// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package node defines the plugin contract between Easel nodes and a
// pipeline-authoring host.
//
// A node declares its interface as a Spec: an ordered list of typed
// input fields plus a single typed output. The host renders the spec
// in its graph editor and submits invocations as JSON input maps.
// ValidateInputs applies declared defaults and enforces enum
// membership and numeric ranges before a node's Apply runs.
package node

import (
	"context"
	"fmt"
	"math"
)

// Kind identifies the type of a field or output as seen by the host.
type Kind string

const (
	KindString       Kind = "STRING"
	KindEnum         Kind = "ENUM"
	KindInt          Kind = "INT"
	KindFloat        Kind = "FLOAT"
	KindImage        Kind = "IMAGE"
	KindConditioning Kind = "CONDITIONING"
)

// Field declares one typed node input.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	// Default, when non-nil, is applied if the host omits the input.
	// Fields without a default are required.
	Default any `json:"default,omitempty"`

	// Options lists the allowed values for KindEnum fields. The first
	// option doubles as the default when Default is nil.
	Options []string `json:"options,omitempty"`

	// Min and Max bound KindInt and KindFloat values when non-nil.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Step is a UI hint for KindFloat sliders.
	Step float64 `json:"step,omitempty"`

	// Multiline and Password are UI hints for KindString fields.
	Multiline bool `json:"multiline,omitempty"`
	Password  bool `json:"password,omitempty"`

	// ForceInput marks a field that must arrive over a graph edge
	// rather than an inline widget.
	ForceInput bool `json:"force_input,omitempty"`
}

// Spec is a node's declared interface.
type Spec struct {
	// Name is the registry key, e.g. "prompt_relay".
	Name string `json:"name"`

	// DisplayName is shown in the host's node tree.
	DisplayName string `json:"display_name"`

	// Category groups the node in the host's node tree.
	Category string `json:"category"`

	Fields []Field `json:"fields"`

	// Output is the kind of the single output value.
	Output Kind `json:"output"`

	// OutputName labels the output socket.
	OutputName string `json:"output_name"`
}

// Inputs is a node invocation payload as decoded from JSON.
type Inputs map[string]any

// Node is a plugin unit. Apply receives validated inputs and returns
// the single output value.
type Node interface {
	Describe() Spec
	Apply(ctx context.Context, in Inputs) (any, error)
}

// ValidateInputs checks in against spec and returns a normalized copy
// with defaults applied. Unknown keys are passed through untouched so
// hosts may attach metadata.
func ValidateInputs(spec Spec, in Inputs) (Inputs, error) {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}

	for _, f := range spec.Fields {
		v, present := out[f.Name]
		if !present || v == nil {
			if def, ok := fieldDefault(f); ok {
				out[f.Name] = def
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, f.Name)
		}

		if err := checkField(f, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func fieldDefault(f Field) (any, bool) {
	if f.Default != nil {
		return f.Default, true
	}
	if f.Kind == KindEnum && len(f.Options) > 0 {
		return f.Options[0], true
	}
	return nil, false
}

func checkField(f Field, v any) error {
	switch f.Kind {
	case KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidInput, f.Name, v)
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidInput, f.Name, v)
		}
		for _, opt := range f.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("%w: %s value %q is not an allowed option", ErrInvalidInput, f.Name, s)
	case KindInt:
		n, ok := asFloat(v)
		if !ok || n != math.Trunc(n) {
			return fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidInput, f.Name, v)
		}
		return checkRange(f, n)
	case KindFloat:
		n, ok := asFloat(v)
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidInput, f.Name, v)
		}
		return checkRange(f, n)
	case KindImage, KindConditioning:
		// Structural payloads; decoded by the consuming node.
	}
	return nil
}

func checkRange(f Field, n float64) error {
	if f.Min != nil && n < *f.Min {
		return fmt.Errorf("%w: %s value %v is below minimum %v", ErrInvalidInput, f.Name, n, *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return fmt.Errorf("%w: %s value %v is above maximum %v", ErrInvalidInput, f.Name, n, *f.Max)
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// StringInput extracts a string input by name.
func StringInput(in Inputs, name string) (string, error) {
	v, ok := in[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidInput, name, v)
	}
	return s, nil
}

// FloatInput extracts a numeric input by name. JSON numbers arrive as
// float64; Go callers may pass int or float32.
func FloatInput(in Inputs, name string) (float64, error) {
	v, ok := in[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	n, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidInput, name, v)
	}
	return n, nil
}

// IntInput extracts an integer input by name.
func IntInput(in Inputs, name string) (int, error) {
	n, err := FloatInput(in, name)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidInput, name, n)
	}
	return int(n), nil
}

// FloatPtr is a convenience for populating Field.Min and Field.Max.
func FloatPtr(v float64) *float64 { return &v }
