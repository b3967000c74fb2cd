// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runNodes(cmd *cobra.Command, args []string) error {
	registry := buildRegistry(newChatClient(), newResolver())
	specs := registry.List()

	if jsonOutput {
		return OutputJSON(specs)
	}

	if !stdoutIsTTY() {
		// Plain name list for piping.
		for _, spec := range specs {
			fmt.Println(spec.Name)
		}
		return nil
	}

	for _, spec := range specs {
		fmt.Printf("%s  (%s)\n", spec.Name, spec.Category)
		for _, f := range spec.Fields {
			line := fmt.Sprintf("  %-16s %s", f.Name, f.Kind)
			if len(f.Options) > 0 {
				line += fmt.Sprintf("  [%d options]", len(f.Options))
			}
			fmt.Println(line)
		}
	}
	return nil
}
