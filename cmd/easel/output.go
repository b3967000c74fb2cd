// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Exit codes for CLI commands.
const (
	CLIExitSuccess = 0 // Operation completed successfully
	CLIExitError   = 2 // Operation failed
)

// CommandResult wraps command output with metadata for --json mode.
type CommandResult struct {
	APIVersion string    `json:"api_version"`
	Command    string    `json:"command"`
	Timestamp  time.Time `json:"timestamp"`
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// stdoutIsTTY reports whether stdout is a terminal. Piped output
// stays plain so it composes with other tools.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// OutputJSON writes structured data as indented JSON to stdout.
func OutputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// OutputResult writes a command result in the selected format: a
// CommandResult envelope in JSON mode, plain text otherwise.
func OutputResult(command string, data any) error {
	if jsonOutput {
		return OutputJSON(CommandResult{
			APIVersion: "1.0",
			Command:    command,
			Timestamp:  time.Now(),
			Success:    true,
			Data:       data,
		})
	}
	fmt.Println(data)
	return nil
}
