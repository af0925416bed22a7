// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_PrintsSummaryForValidCache(t *testing.T) {
	sourceDir := t.TempDir()
	writeSourceFile(t, sourceDir, "a.md", "hello world")

	outputDir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, Build(sourceDir, outputDir, ""))

	var inspectErr error
	out := captureStdout(t, func() {
		inspectErr = Inspect(outputDir)
	})
	require.NoError(t, inspectErr)

	assert.Contains(t, out, "cache_version:")
	assert.Contains(t, out, "document_count: 1")
	assert.Contains(t, out, "integrity:      ok")
}

func TestInspect_FailsOnTamperedManifest(t *testing.T) {
	sourceDir := t.TempDir()
	writeSourceFile(t, sourceDir, "a.md", "hello world")

	outputDir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, Build(sourceDir, outputDir, ""))

	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "manifest.json"), []byte(`{"cache_version": 5}`), 0o644))

	err := Inspect(outputDir)
	assert.Error(t, err)
}

func TestInspect_FailsOnMissingCache(t *testing.T) {
	err := Inspect(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
