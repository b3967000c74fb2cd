// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"log/slog"

	"github.com/atelierworks/easel/cmd/easel/config"
	"github.com/atelierworks/easel/pkg/keys"
	"github.com/atelierworks/easel/services/fusion"
	"github.com/atelierworks/easel/services/node"
	"github.com/atelierworks/easel/services/relay"
	"github.com/atelierworks/easel/services/vision"
)

// newChatClient picks the chat backend from the --backend flag or the
// config, defaulting to OpenRouter.
func newChatClient() relay.ChatClient {
	cfg := config.Global.Backend
	backend := cfg.Type
	if backendType != "" {
		backend = backendType
	}
	endpoint := cfg.BaseURL
	if baseURL != "" {
		endpoint = baseURL
	}

	switch backend {
	case "openai":
		slog.Info("Using OpenAI-compatible chat backend", "base_url", endpoint)
		return relay.NewOpenAIClient(endpoint)
	case "openrouter", "":
		var opts []relay.OpenRouterOption
		if endpoint != "" {
			opts = append(opts, relay.WithEndpoint(endpoint))
		}
		if cfg.RequestsPerSecond > 0 {
			opts = append(opts, relay.WithRateLimit(cfg.RequestsPerSecond))
		}
		slog.Info("Using OpenRouter chat backend")
		return relay.NewOpenRouterClient(opts...)
	default:
		slog.Warn("Unknown backend type, defaulting to openrouter", "type", backend)
		return relay.NewOpenRouterClient()
	}
}

func newResolver() *keys.Resolver {
	return keys.NewResolver(config.Global.Secrets.KeyFile)
}

// buildRegistry wires every node the gateway and the one-shot
// commands can invoke.
func buildRegistry(client relay.ChatClient, resolver *keys.Resolver) *node.Registry {
	registry := node.NewRegistry()
	registry.MustRegister(
		relay.NewPromptRelay(client, resolver),
		vision.NewImageRelay(client, resolver),
		fusion.NewNode(),
	)
	return registry
}
