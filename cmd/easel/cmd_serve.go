// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierworks/easel/cmd/easel/config"
	"github.com/atelierworks/easel/services/gateway"
)

func runServe(cmd *cobra.Command, args []string) error {
	port := config.Global.Gateway.Port
	if servePort != 0 {
		port = servePort
	}

	otlpEndpoint := config.Global.Observability.OTLPEndpoint
	if env := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); env != "" {
		otlpEndpoint = env
	}

	registry := buildRegistry(newChatClient(), newResolver())

	srv := gateway.New(gateway.Config{
		Port:         port,
		AuthToken:    config.Global.Gateway.AuthToken,
		OTLPEndpoint: otlpEndpoint,
	}, registry)

	slog.Info("Starting the easel gateway", "port", port,
		"auth", config.Global.Gateway.AuthToken != "")
	return srv.Run(context.Background())
}
