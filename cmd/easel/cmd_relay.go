// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/atelierworks/easel/cmd/easel/config"
	"github.com/atelierworks/easel/services/node"
)

// readPrompt takes the prompt from the argument list, or from piped
// stdin when no argument is given.
func readPrompt(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no prompt given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read the prompt from stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("stdin was empty")
	}
	return prompt, nil
}

func runRelay(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(args)
	if err != nil {
		return err
	}

	model := modelName
	if model == "" {
		model = config.Global.Backend.DefaultChatModel
	}

	registry := buildRegistry(newChatClient(), newResolver())
	inputs := node.Inputs{
		"input_prompt": prompt,
		"model":        model,
	}
	if promptContext != "" {
		inputs["input_context"] = promptContext
	}
	if stylePrompt != "" {
		inputs["style_prompt"] = stylePrompt
	}
	if apiKey != "" {
		inputs["api_key"] = apiKey
	}

	out, err := registry.Invoke(cmd.Context(), "prompt_relay", inputs)
	if err != nil {
		return err
	}
	return OutputResult("relay", out)
}
