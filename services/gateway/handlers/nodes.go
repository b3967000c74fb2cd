// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package handlers provides HTTP request handlers for the Easel
// gateway.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/atelierworks/easel/pkg/keys"
	"github.com/atelierworks/easel/services/fusion"
	"github.com/atelierworks/easel/services/gateway/datatypes"
	"github.com/atelierworks/easel/services/gateway/middleware"
	"github.com/atelierworks/easel/services/node"
	"github.com/atelierworks/easel/services/relay"
	"github.com/atelierworks/easel/services/vision"
)

var nodesTracer = otel.Tracer("easel.gateway.handlers")

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListNodes returns the catalog of registered node specs.
func ListNodes(registry *node.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"nodes": registry.List()})
	}
}

// InvokeNode validates and runs a single node invocation.
func InvokeNode(registry *node.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := nodesTracer.Start(c.Request.Context(), "InvokeNode")
		defer span.End()

		name := c.Param("name")
		span.SetAttributes(attribute.String("easel.node", name))

		var req datatypes.InvokeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: err.Error()})
			return
		}

		out, err := registry.Invoke(ctx, name, node.Inputs(req.Inputs))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			status := statusFor(err)
			slog.Error("Node invocation failed",
				"node", name,
				"request_id", middleware.GetRequestID(c),
				"trace_id", trace.SpanContextFromContext(ctx).TraceID().String(),
				"status", status,
				"error", err)
			c.JSON(status, datatypes.ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, datatypes.InvokeResponse{Output: out})
	}
}

// statusFor maps invocation failures onto HTTP statuses: unknown node
// is 404, caller mistakes are 400, upstream API failures are 502, and
// everything else is 500.
func statusFor(err error) int {
	var apiErr *relay.APIError
	switch {
	case errors.Is(err, node.ErrUnknownNode):
		return http.StatusNotFound
	case errors.Is(err, node.ErrMissingInput),
		errors.Is(err, node.ErrInvalidInput),
		errors.Is(err, fusion.ErrBadConditioning),
		errors.Is(err, fusion.ErrShapeMismatch),
		errors.Is(err, vision.ErrBadImageShape),
		errors.Is(err, vision.ErrNoImage),
		errors.Is(err, keys.ErrNoKey):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
