// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/atelierworks/easel/cmd/easel/config"
	"github.com/atelierworks/easel/pkg/logging"
)

var appLogger *logging.Logger

func main() {
	err := rootCmd.Execute()
	if appLogger != nil {
		appLogger.Close()
	}
	if err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if err := config.Load(); err != nil {
			log.Fatalf("Error loading the config: %v", err)
		}

		level := logging.LevelInfo
		switch config.Global.Logging.Level {
		case "debug":
			level = logging.LevelDebug
		case "warn":
			level = logging.LevelWarn
		case "error":
			level = logging.LevelError
		}
		if debugMode {
			level = logging.LevelDebug
		}

		appLogger = logging.New(logging.Config{
			Level:   level,
			LogDir:  config.Global.Logging.Dir,
			Service: "easel",
			JSON:    config.Global.Logging.JSON,
			Quiet:   quietMode,
		})
		slog.SetDefault(appLogger.Slog())
	}
}
