// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package keys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useKey opens the key and returns its plaintext for assertions.
func useKey(t *testing.T, k *Key) string {
	t.Helper()
	var got string
	require.NoError(t, k.Use(func(token string) error {
		// token is backed by the locked buffer, which is destroyed when
		// Use returns; copy it so the assertion reads valid memory.
		got = strings.Clone(token)
		return nil
	}))
	return got
}

func TestResolveInlineWins(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, DefaultKeyFileName)
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-from-file"), 0600))

	r := NewResolver(keyFile)
	key, err := r.Resolve("  sk-inline  ")
	require.NoError(t, err)
	assert.Equal(t, "sk-inline", useKey(t, key))
}

func TestResolveKeyFile(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, DefaultKeyFileName)
	require.NoError(t, os.WriteFile(keyFile, []byte("sk-from-file\n"), 0600))

	r := NewResolver(keyFile)
	r.envVar = "EASEL_TEST_UNSET_KEY"
	r.secretPath = filepath.Join(dir, "nope")

	key, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", useKey(t, key))
}

func TestResolveEnvVar(t *testing.T) {
	dir := t.TempDir()

	r := NewResolver(filepath.Join(dir, "missing.key"))
	r.envVar = "EASEL_TEST_API_KEY"
	r.secretPath = filepath.Join(dir, "nope")
	t.Setenv("EASEL_TEST_API_KEY", "sk-from-env")

	key, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", useKey(t, key))
}

func TestResolveSecretMount(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(secret, []byte(" sk-from-secret "), 0600))

	r := NewResolver(filepath.Join(dir, "missing.key"))
	r.envVar = "EASEL_TEST_UNSET_KEY"
	r.secretPath = secret

	key, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-secret", useKey(t, key))
}

func TestResolveNothingFound(t *testing.T) {
	dir := t.TempDir()

	r := NewResolver(filepath.Join(dir, "missing.key"))
	r.envVar = "EASEL_TEST_UNSET_KEY"
	r.secretPath = filepath.Join(dir, "nope")

	_, err := r.Resolve("   ")
	require.ErrorIs(t, err, ErrNoKey)
}

func TestKeyStringRedacts(t *testing.T) {
	key := Seal("sk-secret")
	assert.Equal(t, "[redacted]", key.String())
}
