// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atelierworks/easel/pkg/keys"
	"github.com/atelierworks/easel/pkg/validation"
	"github.com/atelierworks/easel/services/node"
)

// ChatModels are the OpenRouter chat models offered by the prompt
// relay node. The first entry is the default.
var ChatModels = []string{
	"anthropic/claude-sonnet-4",
	"deepseek/deepseek-chat-v3-0324",
	"deepseek/deepseek-r1",
	"google/gemini-2.5-pro-preview",
	"meta-llama/llama-3.3-70b-instruct",
	"meta-llama/llama-guard-3-8b",
	"mistralai/mistral-medium-3",
	"mistralai/mistral-7b-instruct",
	"openai/o3",
}

const (
	// DefaultStylePrompt is the translation instruction preloaded in
	// the style_prompt field.
	DefaultStylePrompt = "Translate the prompt according to the context. Translate epistemic, cultural, and aesthetic, as well as value-related contexts."

	// DefaultContext is the placeholder preloaded in input_context.
	DefaultContext = "Input CONTEXT here"

	// systemPrompt resets conversational state on every call; each
	// invocation is independent.
	systemPrompt = "You are a fresh assistant instance. Forget all previous conversation history."

	// relayTemperature matches the fixed sampling temperature of the
	// relay contract.
	relayTemperature = 0.7
)

// PromptRelay forwards a text prompt, free-text context, and a style
// instruction to a chat-completion model and returns the response
// text verbatim.
type PromptRelay struct {
	client   ChatClient
	resolver *keys.Resolver
}

// NewPromptRelay creates the node.
func NewPromptRelay(client ChatClient, resolver *keys.Resolver) *PromptRelay {
	return &PromptRelay{client: client, resolver: resolver}
}

// Describe implements the node.Node interface.
func (p *PromptRelay) Describe() node.Spec {
	return node.Spec{
		Name:        "prompt_relay",
		DisplayName: "Easel: Prompt Relay",
		Category:    "Easel",
		Fields: []node.Field{
			{Name: "input_prompt", Kind: node.KindString, Multiline: true, ForceInput: true},
			{Name: "input_context", Kind: node.KindString, Multiline: true, Default: DefaultContext},
			{Name: "style_prompt", Kind: node.KindString, Multiline: true, Default: DefaultStylePrompt},
			{Name: "api_key", Kind: node.KindString, Password: true, Default: ""},
			{Name: "model", Kind: node.KindEnum, Options: ChatModels},
			{Name: "debug", Kind: node.KindEnum, Options: []string{"enable", "disable"}},
		},
		Output:     node.KindString,
		OutputName: "output",
	}
}

// Apply implements the node.Node interface.
func (p *PromptRelay) Apply(ctx context.Context, in node.Inputs) (any, error) {
	prompt, err := node.StringInput(in, "input_prompt")
	if err != nil {
		return nil, err
	}
	inputContext, err := node.StringInput(in, "input_context")
	if err != nil {
		return nil, err
	}
	style, err := node.StringInput(in, "style_prompt")
	if err != nil {
		return nil, err
	}
	inlineKey, err := node.StringInput(in, "api_key")
	if err != nil {
		return nil, err
	}
	model, err := node.StringInput(in, "model")
	if err != nil {
		return nil, err
	}
	debug, err := node.StringInput(in, "debug")
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateModelRef(model); err != nil {
		return nil, fmt.Errorf("%w: %v", node.ErrInvalidInput, err)
	}

	key, err := p.resolver.Resolve(inlineKey)
	if err != nil {
		return nil, err
	}

	fullPrompt := fmt.Sprintf("Task:\n%s\n\nContext:\n%s\nPrompt:\n%s",
		strings.TrimSpace(style),
		strings.TrimSpace(inputContext),
		strings.TrimSpace(prompt),
	)

	req := ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fullPrompt},
		},
		Params: GenerationParams{Temperature: relayTemperature},
	}

	if debug == "enable" {
		slog.Debug("Prompt relay request", "model", model, "prompt", fullPrompt)
	}

	answer, err := p.client.Complete(ctx, key, req)
	if err != nil {
		return nil, err
	}

	if debug == "enable" {
		slog.Debug("Prompt relay response", "model", model, "response", answer)
	}

	return answer, nil
}

var _ node.Node = (*PromptRelay)(nil)
