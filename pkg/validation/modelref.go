// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package validation provides input validation for values that end up
// in outbound API requests.
//
// Model references come from host-supplied node inputs. Validating them
// here keeps malformed or hostile strings out of request payloads and
// log lines.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// modelRefPattern matches OpenRouter-style model references.
// Form: vendor/model, lowercase alphanumerics plus dots and hyphens,
// e.g. "anthropic/claude-sonnet-4" or "deepseek/deepseek-chat-v3-0324".
var modelRefPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]*/[a-z0-9][a-z0-9.\-:]*$`)

// MaxModelRefLength bounds model references. The longest references in
// the OpenRouter catalog are well under this.
const MaxModelRefLength = 128

// ValidateModelRef validates a vendor/model reference.
//
// Valid references:
//   - "vendor/model" with exactly one slash
//   - lowercase letters, digits, dots, hyphens (colons allowed after
//     the slash for version suffixes like ":free")
//   - at most MaxModelRefLength characters
func ValidateModelRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("model reference cannot be empty")
	}

	if len(ref) > MaxModelRefLength {
		return fmt.Errorf("model reference too long: %d chars (max %d)", len(ref), MaxModelRefLength)
	}

	if !modelRefPattern.MatchString(ref) {
		return fmt.Errorf("invalid model reference %q (expected vendor/model)", ref)
	}

	return nil
}

// SanitizeModelRef normalizes and validates a model reference.
// Returns the trimmed lowercase reference if valid.
func SanitizeModelRef(ref string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(ref))
	if err := ValidateModelRef(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
