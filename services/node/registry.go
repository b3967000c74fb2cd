// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package node

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "easel_node_invocations_total",
		Help: "Total node invocations by node and status",
	}, []string{"node", "status"})

	nodeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "easel_node_duration_seconds",
		Help:    "Node invocation duration including upstream calls",
		Buckets: []float64{0.005, 0.05, 0.25, 1, 5, 15, 60},
	}, []string{"node"})
)

// Registry holds the registered nodes. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register adds a node under its spec name. Names must be unique.
func (r *Registry) Register(n Node) error {
	spec := n.Describe()
	if spec.Name == "" {
		return fmt.Errorf("%w: node spec has no name", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, spec.Name)
	}
	r.nodes[spec.Name] = n
	slog.Debug("Registered node", "node", spec.Name, "category", spec.Category)
	return nil
}

// MustRegister registers nodes and panics on error. For wiring at startup.
func (r *Registry) MustRegister(nodes ...Node) {
	for _, n := range nodes {
		if err := r.Register(n); err != nil {
			panic(err)
		}
	}
}

// Get returns the node registered under name.
func (r *Registry) Get(name string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[name]
	return n, ok
}

// List returns all registered specs sorted by name.
func (r *Registry) List() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]Spec, 0, len(r.nodes))
	for _, n := range r.nodes {
		specs = append(specs, n.Describe())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Invoke validates inputs against the node's spec and runs Apply,
// recording invocation metrics.
func (r *Registry) Invoke(ctx context.Context, name string, in Inputs) (any, error) {
	n, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, name)
	}

	validated, err := ValidateInputs(n.Describe(), in)
	if err != nil {
		nodeInvocations.WithLabelValues(name, "invalid_input").Inc()
		return nil, err
	}

	start := time.Now()
	out, err := n.Apply(ctx, validated)
	nodeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		nodeInvocations.WithLabelValues(name, "error").Inc()
		return nil, err
	}
	nodeInvocations.WithLabelValues(name, "success").Inc()
	return out, nil
}
