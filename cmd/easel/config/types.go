// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package config

type EaselConfig struct {
	// Gateway: settings for the HTTP sidecar service
	Gateway GatewayConfig `yaml:"gateway"`

	// Backend: which chat-completion API to relay through
	Backend BackendConfig `yaml:"backend"`

	// Secrets: where the API key lives when not passed inline
	Secrets SecretsConfig `yaml:"secrets"`

	// Logging: destination and verbosity for structured logs
	Logging LoggingConfig `yaml:"logging"`

	// Observability: trace export settings
	Observability ObservabilityConfig `yaml:"observability"`
}

type GatewayConfig struct {
	Port      int    `yaml:"port"`       // e.g. 12260
	AuthToken string `yaml:"auth_token"` // empty disables auth
}

type BackendConfig struct {
	// Type can be "openrouter" or "openai".
	Type    string `yaml:"type"`
	BaseURL string `yaml:"base_url,omitempty"`

	// DefaultChatModel and DefaultVisionModel pre-select the model
	// enum when a caller does not pick one.
	DefaultChatModel   string `yaml:"default_chat_model"`
	DefaultVisionModel string `yaml:"default_vision_model"`

	// RequestsPerSecond caps outbound API calls. Zero means no cap.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type SecretsConfig struct {
	// KeyFile points at a file holding the API key, highest-priority
	// source after an inline widget value.
	KeyFile string `yaml:"key_file"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir,omitempty"`
	JSON  bool   `yaml:"json"`
}

type ObservabilityConfig struct {
	// OTLPEndpoint is the gRPC address of a trace collector. Empty
	// disables export.
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}

func DefaultConfig() EaselConfig {
	return EaselConfig{
		Gateway: GatewayConfig{
			Port:      12260,
			AuthToken: "",
		},
		Backend: BackendConfig{
			Type:               "openrouter",
			DefaultChatModel:   "anthropic/claude-sonnet-4",
			DefaultVisionModel: "openai/gpt-4o",
			RequestsPerSecond:  0,
		},
		Secrets: SecretsConfig{
			KeyFile: "openrouter.key",
		},
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
