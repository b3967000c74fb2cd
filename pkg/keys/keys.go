// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

// Package keys resolves and guards API credentials.
//
// Resolution order:
//
//  1. inline key supplied with the node inputs (trimmed)
//  2. key file (openrouter.key next to the config, or a configured path)
//  3. OPENROUTER_API_KEY environment variable
//  4. /run/secrets/openrouter_api_key (container secret mount)
//
// Resolved keys are sealed in a memguard enclave so the plaintext is
// only held in locked memory for the duration of a request.
package keys

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/awnumar/memguard"
)

const (
	// EnvVar is the environment variable consulted after the key file.
	EnvVar = "OPENROUTER_API_KEY"

	// SecretPath is the container secret mount consulted last.
	SecretPath = "/run/secrets/openrouter_api_key"

	// DefaultKeyFileName is the conventional key file name.
	DefaultKeyFileName = "openrouter.key"
)

// ErrNoKey is returned when no credential source yields a key.
var ErrNoKey = errors.New("no API key provided and openrouter.key not found")

var memguardInit sync.Once

// Key is an API credential sealed in locked memory.
type Key struct {
	enclave *memguard.Enclave
}

// Seal wraps a raw token in a Key. The caller's copy of the token is
// not wiped; prefer Resolver.Resolve which never exposes intermediate
// copies beyond this call.
func Seal(token string) *Key {
	memguardInit.Do(memguard.CatchInterrupt)
	return &Key{enclave: memguard.NewEnclave([]byte(token))}
}

// Use opens the enclave and passes the plaintext token to fn. The
// locked buffer is destroyed when fn returns.
func (k *Key) Use(fn func(token string) error) error {
	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open key enclave: %w", err)
	}
	defer buf.Destroy()
	return fn(buf.String())
}

// String redacts the key in logs and format verbs.
func (k *Key) String() string { return "[redacted]" }

// Resolver locates an API key across the supported sources.
type Resolver struct {
	// KeyFile is the path of the key file. Empty disables the file source.
	KeyFile string

	// envVar and secretPath default to the package constants;
	// overridable for tests.
	envVar     string
	secretPath string
}

// NewResolver creates a Resolver reading the given key file path.
func NewResolver(keyFile string) *Resolver {
	return &Resolver{
		KeyFile:    keyFile,
		envVar:     EnvVar,
		secretPath: SecretPath,
	}
}

// Resolve returns the first key found, checking the inline value, the
// key file, the environment, and the secret mount in that order.
// Returns ErrNoKey when every source is empty.
func (r *Resolver) Resolve(inline string) (*Key, error) {
	if token := strings.TrimSpace(inline); token != "" {
		return Seal(token), nil
	}

	if r.KeyFile != "" {
		if content, err := os.ReadFile(r.KeyFile); err == nil {
			if token := strings.TrimSpace(string(content)); token != "" {
				return Seal(token), nil
			}
		}
	}

	envVar := r.envVar
	if envVar == "" {
		envVar = EnvVar
	}
	if token := strings.TrimSpace(os.Getenv(envVar)); token != "" {
		return Seal(token), nil
	}

	secretPath := r.secretPath
	if secretPath == "" {
		secretPath = SecretPath
	}
	if content, err := os.ReadFile(secretPath); err == nil {
		if token := strings.TrimSpace(string(content)); token != "" {
			return Seal(token), nil
		}
	}

	return nil, ErrNoKey
}
