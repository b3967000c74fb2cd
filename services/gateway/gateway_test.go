// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierworks/easel/services/node"
)

type constNode struct{ spec node.Spec }

func (c constNode) Describe() node.Spec { return c.spec }

func (c constNode) Apply(_ context.Context, _ node.Inputs) (any, error) {
	return "ok", nil
}

func newGateway(t *testing.T, token string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := node.NewRegistry()
	require.NoError(t, reg.Register(constNode{spec: node.Spec{
		Name:   "const",
		Output: node.KindString,
	}}))
	return New(Config{Port: 0, AuthToken: token}, reg)
}

func TestServerRoutes(t *testing.T) {
	srv := newGateway(t, "")

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerAuthGatesAPIOnly(t *testing.T) {
	srv := newGateway(t, "topsecret")

	// Health stays open for liveness probes.
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/nodes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/nodes", nil)
	req.Header.Set("Authorization", "Bearer topsecret")
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
