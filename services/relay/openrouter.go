// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/atelierworks/easel/pkg/keys"
)

// DefaultEndpoint is the OpenRouter chat-completion endpoint.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// Wire types. The request shape {model, messages, temperature[,
// max_tokens]} and the choices[0].message.content read path are the
// provider's contract and must not drift.

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []ContentPart
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterClient calls an OpenRouter-compatible chat-completion
// endpoint over plain net/http. Safe for concurrent use.
type OpenRouterClient struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter // nil disables outbound rate limiting
}

// OpenRouterOption configures an OpenRouterClient.
type OpenRouterOption func(*OpenRouterClient)

// WithEndpoint overrides the chat-completion endpoint URL.
func WithEndpoint(url string) OpenRouterOption {
	return func(c *OpenRouterClient) { c.endpoint = url }
}

// WithHTTPClient overrides the HTTP client, e.g. to adjust timeouts.
func WithHTTPClient(hc *http.Client) OpenRouterOption {
	return func(c *OpenRouterClient) { c.httpClient = hc }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) OpenRouterOption {
	return func(c *OpenRouterClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewOpenRouterClient creates a client for the OpenRouter endpoint.
func NewOpenRouterClient(opts ...OpenRouterOption) *OpenRouterClient {
	c := &OpenRouterClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		endpoint:   DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete implements the ChatClient interface.
func (c *OpenRouterClient) Complete(ctx context.Context, key *keys.Key, req ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrNoMessages
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	payload := chatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Params.Temperature,
		MaxTokens:   req.Params.MaxTokens,
	}
	for _, m := range req.Messages {
		wm := wireMessage{Role: m.Role}
		if len(m.Parts) > 0 {
			wm.Content = m.Parts
		} else {
			wm.Content = m.Content
		}
		payload.Messages = append(payload.Messages, wm)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	err = key.Use(func(token string) error {
		httpReq.Header.Set("Authorization", "Bearer "+token)
		var doErr error
		resp, doErr = c.httpClient.Do(httpReq)
		httpReq.Header.Del("Authorization")
		return doErr
	})
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Received chat completion response",
		"model", req.Model,
		"status", resp.StatusCode,
		"body_length", len(respBytes),
	)

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	var apiResp chatCompletionResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return apiResp.Choices[0].Message.Content, nil
}
