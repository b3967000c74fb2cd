// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateModelRef(t *testing.T) {
	valid := []string{
		"anthropic/claude-sonnet-4",
		"deepseek/deepseek-chat-v3-0324",
		"google/gemini-2.5-pro-preview",
		"meta-llama/llama-3.3-70b-instruct",
		"openai/o3",
		"mistralai/mistral-7b-instruct:free",
	}
	for _, ref := range valid {
		assert.NoError(t, ValidateModelRef(ref), ref)
	}

	invalid := []string{
		"",
		"no-slash",
		"two/slashes/here",
		"UPPER/case",
		"vendor/",
		"/model",
		"vendor/model with space",
		"vendor/model\n",
		strings.Repeat("a", 100) + "/" + strings.Repeat("b", 100),
	}
	for _, ref := range invalid {
		assert.Error(t, ValidateModelRef(ref), "%q should be rejected", ref)
	}
}

func TestSanitizeModelRef(t *testing.T) {
	ref, err := SanitizeModelRef("  Anthropic/Claude-Sonnet-4  ")
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-sonnet-4", ref)

	_, err = SanitizeModelRef("not a model")
	assert.Error(t, err)
}
