// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	backendType   string // CLI override for backend.type (openrouter/openai)
	baseURL       string // CLI override for backend.base_url
	modelName     string // model for one-shot commands
	apiKey        string // inline API key, overrides the key file and env
	promptContext string // context block for the relay command
	stylePrompt   string // style/task block for the relay command
	instruction   string // analysis instruction for the describe command
	maxTokens     int    // response cap for the describe command
	jsonOutput    bool   // emit machine-readable JSON
	debugMode     bool   // force debug logging
	quietMode     bool   // suppress stderr logging
	servePort     int    // CLI override for gateway.port

	rootCmd = &cobra.Command{
		Use:   "easel",
		Short: "A sidecar that relays image-pipeline prompts through hosted LLM APIs",
		Long: `Easel exposes prompt-relay, image-description, and conditioning-fusion
				nodes for image generation pipelines, either as a local HTTP
				service or as one-shot CLI commands.`,
	}

	// --- Service ---
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the node gateway as a local HTTP service",
		RunE:  runServe, // Defined in cmd_serve.go
	}

	// --- Catalog ---
	nodesCmd = &cobra.Command{
		Use:   "nodes",
		Short: "List the available node specs",
		RunE:  runNodes, // Defined in cmd_nodes.go
	}

	// --- One-shot node invocations ---
	relayCmd = &cobra.Command{
		Use:   "relay [prompt]",
		Short: "Send a prompt through the chat relay and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRelay, // Defined in cmd_relay.go
	}

	describeCmd = &cobra.Command{
		Use:   "describe [image file]",
		Short: "Describe an image file through the vision relay",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribe, // Defined in cmd_describe.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	rootCmd.PersistentFlags().StringVar(&backendType, "backend", "", "Chat backend (openrouter or openai)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the backend base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Inline API key (overrides key file and env)")

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")

	relayCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model to relay through")
	relayCmd.Flags().StringVar(&promptContext, "context", "", "Context block for the prompt composition")
	relayCmd.Flags().StringVar(&stylePrompt, "style", "", "Style/task block for the prompt composition")
	describeCmd.Flags().StringVarP(&modelName, "model", "m", "", "Vision model to use")
	describeCmd.Flags().StringVar(&instruction, "instruction", "", "Analysis instruction")
	describeCmd.Flags().IntVar(&maxTokens, "max-tokens", 1024, "Response token cap")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(describeCmd)
}
