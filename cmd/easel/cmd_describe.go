// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierworks/easel/cmd/easel/config"
	"github.com/atelierworks/easel/services/node"
	"github.com/atelierworks/easel/services/vision"
)

func runDescribe(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read the image file: %w", err)
	}
	uri, err := vision.DataURIFromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", args[0], err)
	}

	model := modelName
	if model == "" {
		model = config.Global.Backend.DefaultVisionModel
	}

	registry := buildRegistry(newChatClient(), newResolver())
	inputs := node.Inputs{
		"images":     uri,
		"model":      model,
		"max_tokens": maxTokens,
	}
	if instruction != "" {
		inputs["instruction"] = instruction
	}
	if apiKey != "" {
		inputs["api_key"] = apiKey
	}

	out, err := registry.Invoke(cmd.Context(), "image_relay", inputs)
	if err != nil {
		return err
	}
	return OutputResult("describe", out)
}
