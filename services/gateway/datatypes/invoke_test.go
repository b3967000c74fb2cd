// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package datatypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeRequestValidate(t *testing.T) {
	req := InvokeRequest{Inputs: map[string]any{"input_prompt": "a misty forest"}}
	assert.NoError(t, req.Validate())
}

func TestInvokeRequestMissingInputs(t *testing.T) {
	var req InvokeRequest
	assert.Error(t, req.Validate())
}

func TestInvokeRequestOversizedInput(t *testing.T) {
	req := InvokeRequest{Inputs: map[string]any{
		"images": strings.Repeat("x", MaxInputBytes+1),
	}}

	err := req.Validate()
	require.Error(t, err)

	var oversized *OversizedInputError
	require.ErrorAs(t, err, &oversized)
	assert.Equal(t, "images", oversized.Field)
}

func TestInvokeRequestNonStringInputsPass(t *testing.T) {
	req := InvokeRequest{Inputs: map[string]any{
		"alpha":             0.5,
		"clip_conditioning": []any{[]any{1.0, 2.0}},
	}}
	assert.NoError(t, req.Validate())
}
