// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package relay

import "errors"

var (
	// ErrEmptyResponse is returned when the provider answers 200 but
	// the body carries no choices or no message content.
	ErrEmptyResponse = errors.New("chat completion returned no choices")

	// ErrNoMessages is returned for a request without any messages.
	ErrNoMessages = errors.New("chat request has no messages")
)
