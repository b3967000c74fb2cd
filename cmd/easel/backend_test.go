// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierworks/easel/services/relay"
)

func TestBuildRegistryWiresAllNodes(t *testing.T) {
	registry := buildRegistry(relay.NewOpenRouterClient(), newResolver())

	specs := registry.List()
	require.Len(t, specs, 3)

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"conditioning_fusion", "image_relay", "prompt_relay"}, names)
}

func TestNewChatClientBackendSwitch(t *testing.T) {
	orig := backendType
	defer func() { backendType = orig }()

	backendType = "openai"
	_, ok := newChatClient().(*relay.OpenAIClient)
	assert.True(t, ok, "openai backend should yield an OpenAIClient")

	backendType = "openrouter"
	_, ok = newChatClient().(*relay.OpenRouterClient)
	assert.True(t, ok, "openrouter backend should yield an OpenRouterClient")

	backendType = "bogus"
	_, ok = newChatClient().(*relay.OpenRouterClient)
	assert.True(t, ok, "unknown backend should fall back to OpenRouter")
}

func TestReadPromptFromArgs(t *testing.T) {
	prompt, err := readPrompt([]string{"a quiet harbor at dawn"})
	require.NoError(t, err)
	assert.Equal(t, "a quiet harbor at dawn", prompt)
}
