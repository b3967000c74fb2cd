// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package relay

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/atelierworks/easel/pkg/keys"
)

// OpenAIClient is the alternate backend for OpenAI-compatible
// endpoints, built on the go-openai SDK. Selected with
// `backend: openai` in the config.
type OpenAIClient struct {
	baseURL string
}

// NewOpenAIClient creates a client. baseURL may be empty for the
// default api.openai.com endpoint, or point at any OpenAI-compatible
// server.
func NewOpenAIClient(baseURL string) *OpenAIClient {
	return &OpenAIClient{baseURL: baseURL}
}

// Complete implements the ChatClient interface.
func (c *OpenAIClient) Complete(ctx context.Context, key *keys.Key, req ChatRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", ErrNoMessages
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Params.Temperature,
	}
	if req.Params.MaxTokens > 0 {
		apiReq.MaxTokens = req.Params.MaxTokens
	}

	for _, m := range req.Messages {
		msg := openai.ChatCompletionMessage{Role: m.Role}
		if len(m.Parts) > 0 {
			for _, p := range m.Parts {
				switch p.Type {
				case "text":
					msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
						Type: openai.ChatMessagePartTypeText,
						Text: p.Text,
					})
				case "image_url":
					msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: p.ImageURL.URL},
					})
				default:
					return "", fmt.Errorf("unsupported content part type %q", p.Type)
				}
			}
		} else {
			msg.Content = m.Content
		}
		apiReq.Messages = append(apiReq.Messages, msg)
	}

	var answer string
	err := key.Use(func(token string) error {
		cfg := openai.DefaultConfig(token)
		if c.baseURL != "" {
			cfg.BaseURL = c.baseURL
		}
		client := openai.NewClientWithConfig(cfg)

		resp, err := client.CreateChatCompletion(ctx, apiReq)
		if err != nil {
			return fmt.Errorf("OpenAI API call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyResponse
		}
		slog.Debug("Received response from OpenAI backend",
			"model", req.Model, "finish_reason", resp.Choices[0].FinishReason)
		answer = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}
