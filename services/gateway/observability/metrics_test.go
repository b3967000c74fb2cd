// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.POST("/v1/nodes/:name", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(
		httpRequests.WithLabelValues("/v1/nodes/:name", http.MethodPost, "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/nodes/prompt_relay", nil))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/nodes/image_relay", nil))

	after := testutil.ToFloat64(
		httpRequests.WithLabelValues("/v1/nodes/:name", http.MethodPost, "200"))
	assert.Equal(t, float64(2), after-before,
		"both invocations should land on the same route template")
}

func TestMiddlewareUnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())

	before := testutil.ToFloat64(
		httpRequests.WithLabelValues("unmatched", http.MethodGet, "404"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	after := testutil.ToFloat64(
		httpRequests.WithLabelValues("unmatched", http.MethodGet, "404"))
	assert.Equal(t, float64(1), after-before)
}
