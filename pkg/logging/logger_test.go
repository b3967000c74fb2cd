// Copyright (C) 2026 Atelier Works (kontakt@atelierworks.eu)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the European Union Public Licence (EUPL) v1.2.
// See the LICENCE.txt file for the full licence text.

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()
	require.NotNil(t, logger)
	require.NotNil(t, logger.Slog())

	// Must not panic.
	logger.Info("hello", "key", "value")
	logger.Debug("filtered at info level")
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	logger.Info("file entry", "answer", 42)
	require.NoError(t, logger.Close())

	filename := "testsvc_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `"msg":"file entry"`)
	assert.Contains(t, content, `"answer":42`)
	assert.Contains(t, content, `"service":"testsvc"`)
}

func TestFileLoggingFiltersByLevel(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Close())

	filename := "testsvc_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestExporterReceivesEntries(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{
		Level:    LevelInfo,
		Service:  "exp",
		Quiet:    true,
		Exporter: exporter,
	})

	logger.Info("exported message", "node", "prompt_relay")

	// Export runs on a goroutine; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(exporter.Entries()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	entries := exporter.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "exported message", entries[0].Message)
	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, "exp", entries[0].Service)
	assert.Equal(t, "prompt_relay", entries[0].Attrs["node"])

	require.NoError(t, logger.Close())
}

func TestWithAddsAttributes(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{
		Level:    LevelInfo,
		Quiet:    true,
		Exporter: exporter,
	})

	child := logger.With("request_id", "abc123")
	require.NotNil(t, child)
	child.Info("child message")

	// The exporter is shared between parent and child.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(exporter.Entries()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotEmpty(t, exporter.Entries())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/.easel/logs")
	assert.True(t, strings.HasPrefix(expanded, home))
	assert.Equal(t, "/var/log/easel", expandPath("/var/log/easel"))
	assert.Equal(t, "relative", expandPath("relative"))
}

func TestArgsToMap(t *testing.T) {
	m := argsToMap([]any{"a", 1, "b", "two", 3, "ignored-non-string-key"})
	assert.Equal(t, 1, m["a"])
	assert.Equal(t, "two", m["b"])
	assert.Len(t, m, 2)
}
