// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package vision

import "errors"

var (
	// ErrNoImage is returned when the images input is empty.
	ErrNoImage = errors.New("no image provided")

	// ErrBadImageShape is returned when the image payload is not a
	// recognizable HWC or CHW tensor with 1, 3 or 4 channels.
	ErrBadImageShape = errors.New("unsupported image shape: expected HWC or CHW with 1, 3 or 4 channels")

	// ErrEncodeFailed is returned when JPEG encoding fails.
	ErrEncodeFailed = errors.New("failed to encode image")
)
