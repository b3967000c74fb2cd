// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package vision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atelierworks/easel/pkg/keys"
	"github.com/atelierworks/easel/pkg/validation"
	"github.com/atelierworks/easel/services/node"
	"github.com/atelierworks/easel/services/relay"
)

// VisionModels are the vision-capable models offered by the node.
var VisionModels = []string{
	"openai/gpt-4o",
	"google/gemini-flash-1.5",
	"qwen/qwen-vl-plus",
	"meta-llama/llama-3.2-11b-vision-instruct",
}

// DefaultInstruction is the analysis instruction preloaded in the
// instruction field.
const DefaultInstruction = "Describe the image. Detect its likely cultural context. " +
	"Enrich your description with analyses of the cultural constellations and meanings, " +
	"relations, values, and emotions expressed in the image. Detect the meaning also in " +
	"a more abstract way: what do the depicted entities, actions, relationships imply " +
	"in the given cultural context?"

// ImageRelay base64-encodes an image and sends it with an instruction
// to a vision-capable chat model, returning the text response.
type ImageRelay struct {
	client   relay.ChatClient
	resolver *keys.Resolver
}

// NewImageRelay creates the node.
func NewImageRelay(client relay.ChatClient, resolver *keys.Resolver) *ImageRelay {
	return &ImageRelay{client: client, resolver: resolver}
}

// Describe implements the node.Node interface.
func (v *ImageRelay) Describe() node.Spec {
	return node.Spec{
		Name:        "image_relay",
		DisplayName: "Easel: Image Analysis",
		Category:    "Easel",
		Fields: []node.Field{
			{Name: "images", Kind: node.KindImage},
			{Name: "instruction", Kind: node.KindString, Multiline: true, Default: DefaultInstruction},
			{Name: "api_key", Kind: node.KindString, Password: true, Default: ""},
			{Name: "model", Kind: node.KindEnum, Options: VisionModels},
			{Name: "max_tokens", Kind: node.KindInt, Default: 1024, Min: node.FloatPtr(256), Max: node.FloatPtr(4096)},
			{Name: "temperature", Kind: node.KindFloat, Default: 0.7, Min: node.FloatPtr(0), Max: node.FloatPtr(2)},
		},
		Output:     node.KindString,
		OutputName: "response",
	}
}

// Apply implements the node.Node interface.
func (v *ImageRelay) Apply(ctx context.Context, in node.Inputs) (any, error) {
	images, ok := in["images"]
	if !ok || images == nil {
		return nil, ErrNoImage
	}

	instruction, err := node.StringInput(in, "instruction")
	if err != nil {
		return nil, err
	}
	inlineKey, err := node.StringInput(in, "api_key")
	if err != nil {
		return nil, err
	}
	model, err := node.StringInput(in, "model")
	if err != nil {
		return nil, err
	}
	maxTokens, err := node.IntInput(in, "max_tokens")
	if err != nil {
		return nil, err
	}
	temperature, err := node.FloatInput(in, "temperature")
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateModelRef(model); err != nil {
		return nil, fmt.Errorf("%w: %v", node.ErrInvalidInput, err)
	}

	dataURI, err := encodeImageInput(images)
	if err != nil {
		return nil, err
	}

	key, err := v.resolver.Resolve(inlineKey)
	if err != nil {
		return nil, err
	}

	req := relay.ChatRequest{
		Model: model,
		Messages: []relay.Message{
			{Role: "user", Parts: []relay.ContentPart{
				relay.ImagePart(dataURI),
				relay.TextPart(instruction),
			}},
		},
		Params: relay.GenerationParams{
			Temperature: float32(temperature),
			MaxTokens:   maxTokens,
		},
	}

	slog.Debug("Relaying image for analysis", "model", model, "data_uri_length", len(dataURI))

	return v.client.Complete(ctx, key, req)
}

// encodeImageInput accepts either a tensor payload or a pre-encoded
// data URI string.
func encodeImageInput(v any) (string, error) {
	if s, ok := v.(string); ok {
		if len(s) > 0 {
			return s, nil
		}
		return "", ErrNoImage
	}

	tensor, err := DecodeTensor(v)
	if err != nil {
		return "", err
	}
	return tensor.DataURI()
}

var _ node.Node = (*ImageRelay)(nil)
