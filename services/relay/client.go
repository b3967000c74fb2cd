// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package relay forwards prompts to remote chat-completion APIs and
// exposes them as Easel nodes.
package relay

import (
	"context"
	"fmt"

	"github.com/atelierworks/easel/pkg/keys"
)

// GenerationParams carries the tunable sampling settings a node
// forwards with a request.
type GenerationParams struct {
	Temperature float32
	MaxTokens   int // 0 omits max_tokens from the request
}

// ContentPart is one element of a multimodal message: either text or
// an image reference (a URL or data URI).
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image location for an image_url content part.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image_url content part.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}

// Message is one chat turn. Content is used for plain text; Parts,
// when non-empty, takes precedence and produces a multimodal part list
// on the wire.
type Message struct {
	Role    string
	Content string
	Parts   []ContentPart
}

// ChatRequest is a single synchronous chat-completion call.
type ChatRequest struct {
	Model    string
	Messages []Message
	Params   GenerationParams
}

// ChatClient performs one chat-completion round trip and returns the
// response text verbatim.
type ChatClient interface {
	Complete(ctx context.Context, key *keys.Key, req ChatRequest) (string, error)
}

// APIError reports a non-success upstream HTTP status. The response
// body is preserved so callers see the provider's own diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat completion API returned status %d: %s", e.StatusCode, e.Body)
}
