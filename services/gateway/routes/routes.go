// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelierworks/easel/services/gateway/handlers"
	"github.com/atelierworks/easel/services/gateway/middleware"
	"github.com/atelierworks/easel/services/node"
)

// SetupRoutes registers all gateway routes. authToken guards the /v1
// group; an empty token leaves it open.
func SetupRoutes(router *gin.Engine, registry *node.Registry, authToken string) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.RequireToken(authToken))
	{
		v1.GET("/nodes", handlers.ListNodes(registry))
		v1.POST("/nodes/:name", handlers.InvokeNode(registry))
	}
}
