// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package gateway exposes the node registry over HTTP so image
// pipelines can invoke Easel nodes as a sidecar service.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/atelierworks/easel/services/gateway/middleware"
	"github.com/atelierworks/easel/services/gateway/observability"
	"github.com/atelierworks/easel/services/gateway/routes"
	"github.com/atelierworks/easel/services/node"
)

const serviceName = "easel-gateway"

// Config carries the settings the gateway needs at startup.
type Config struct {
	// Port is the TCP port to listen on.
	Port int

	// AuthToken guards the /v1 routes when non-empty.
	AuthToken string

	// OTLPEndpoint is the gRPC address of an OTLP trace collector.
	// Empty disables tracing export.
	OTLPEndpoint string
}

// Server wraps the gin engine and its node registry.
type Server struct {
	cfg      Config
	registry *node.Registry
	router   *gin.Engine
}

// New builds a gateway server around the given registry.
func New(cfg Config, registry *node.Registry) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.Middleware())

	routes.SetupRoutes(router, registry, cfg.AuthToken)

	return &Server{cfg: cfg, registry: registry, router: router}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.cfg.OTLPEndpoint != "" {
		cleanup, err := InitTracer(ctx, s.cfg.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("failed to set up the OTLP tracer: %w", err)
		}
		defer cleanup(context.Background())
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting the gateway server", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down the gateway server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// InitTracer wires the global OTel trace provider to an OTLP/gRPC
// collector and returns a cleanup function that flushes the exporter.
func InitTracer(ctx context.Context, endpoint string) (func(context.Context), error) {
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}
