// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIngest(t *testing.T, id, content string) Document {
	t.Helper()
	doc, err := IngestDocument(DocumentID(id), id, []byte(content), NewMetadata())
	require.NoError(t, err)
	return doc
}

func TestCacheBuilder_Build_DeterministicAcrossPermutations(t *testing.T) {
	docs := []Document{
		mustIngest(t, "overview.md", "Overview of the system."),
		mustIngest(t, "security.md", "Security hardening guide."),
		mustIngest(t, "deployment.md", "Deployment deployment deployment guide."),
	}

	reversed := []Document{docs[2], docs[1], docs[0]}

	dir1 := filepath.Join(t.TempDir(), "cache1")
	dir2 := filepath.Join(t.TempDir(), "cache2")

	builder := NewCacheBuilder(CacheBuildConfigV0())

	cache1, err := builder.Build(docs, dir1)
	require.NoError(t, err)

	cache2, err := builder.Build(reversed, dir2)
	require.NoError(t, err)

	assert.Equal(t, cache1.Manifest.CacheVersion, cache2.Manifest.CacheVersion,
		"cache_version must be independent of input document order")
}

func TestCacheBuilder_Build_ConfigChangeChangesVersion(t *testing.T) {
	docs := []Document{mustIngest(t, "a.md", "hello world")}

	dirA := filepath.Join(t.TempDir(), "cache-a")
	dirB := filepath.Join(t.TempDir(), "cache-b")

	cacheA, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dirA)
	require.NoError(t, err)

	altConfig := CacheBuildConfig{Version: "2", HashAlgorithm: "sha256"}
	cacheB, err := NewCacheBuilder(altConfig).Build(docs, dirB)
	require.NoError(t, err)

	assert.NotEqual(t, cacheA.Manifest.CacheVersion, cacheB.Manifest.CacheVersion)
}

func TestCacheBuilder_Build_RejectsDuplicateDocumentID(t *testing.T) {
	docs := []Document{
		mustIngest(t, "a.md", "one"),
		mustIngest(t, "a.md", "two"),
	}

	dir := filepath.Join(t.TempDir(), "cache")
	_, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dir)
	require.Error(t, err)

	var buildErr *CacheBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, BuildDuplicateDocumentID, buildErr.Kind)
}

func TestCacheBuilder_Build_RejectsOutputDirAlreadyExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	docs := []Document{mustIngest(t, "a.md", "hello")}
	_, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dir)
	require.Error(t, err)

	var buildErr *CacheBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, BuildOutputExists, buildErr.Kind)
}

func TestCacheBuilder_Build_RejectsFilenameCollision(t *testing.T) {
	docA, err := IngestDocument("a.md", "a.md", []byte("one"), NewMetadata())
	require.NoError(t, err)
	docB, err := IngestDocument("b.md", "b.md", []byte("two"), NewMetadata())
	require.NoError(t, err)

	// Force a stem collision by overwriting both versions to share the
	// same first 12 hex characters; a real SHA-256 collision here is
	// astronomically unlikely, so we construct one directly.
	docA.Version = DocumentVersion("sha256:aaaaaaaaaaaa000000000000000000000000000000000000000000000000aa")
	docB.Version = DocumentVersion("sha256:aaaaaaaaaaaa111111111111111111111111111111111111111111111111bb")

	dir := filepath.Join(t.TempDir(), "cache")
	_, err = NewCacheBuilder(CacheBuildConfigV0()).Build([]Document{docA, docB}, dir)
	require.Error(t, err)

	var buildErr *CacheBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, BuildFilenameCollision, buildErr.Kind)
}

func TestCacheBuilder_Build_RejectsInvalidVersionFormat(t *testing.T) {
	doc, err := IngestDocument("a.md", "a.md", []byte("hello"), NewMetadata())
	require.NoError(t, err)
	doc.Version = DocumentVersion("not-a-valid-version")

	dir := filepath.Join(t.TempDir(), "cache")
	_, err = NewCacheBuilder(CacheBuildConfigV0()).Build([]Document{doc}, dir)
	require.Error(t, err)

	var buildErr *CacheBuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, BuildInvalidVersionFormat, buildErr.Kind)
}

func TestCacheBuilder_Build_PublishesAtomically(t *testing.T) {
	docs := []Document{mustIngest(t, "a.md", "hello world")}
	dir := filepath.Join(t.TempDir(), "cache")

	_, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)

	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp.", "no staging directory should survive a successful build")
	}

	assert.FileExists(t, filepath.Join(dir, "manifest.json"))
	assert.FileExists(t, filepath.Join(dir, "index.json"))
}

func TestCacheBuilder_Build_ManifestAndIndexAreConsistent(t *testing.T) {
	docs := []Document{
		mustIngest(t, "a.md", "alpha"),
		mustIngest(t, "b.md", "beta"),
	}
	dir := filepath.Join(t.TempDir(), "cache")

	cache, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Manifest.DocumentCount)

	indexData, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)

	var index map[string]string
	require.NoError(t, json.Unmarshal(indexData, &index))

	for _, entry := range cache.Manifest.Documents {
		path, ok := index[string(entry.ID)]
		require.True(t, ok)
		assert.Equal(t, entry.File, path)
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(path)))
	}
}

func TestCacheBuilder_Build_ManifestDocumentsSortedByID(t *testing.T) {
	docs := []Document{
		mustIngest(t, "overview.md", "Overview of the system."),
		mustIngest(t, "security.md", "Security hardening guide."),
		mustIngest(t, "deployment.md", "Deployment deployment deployment guide."),
	}
	dir := filepath.Join(t.TempDir(), "cache")

	cache, err := NewCacheBuilder(CacheBuildConfigV0()).Build(docs, dir)
	require.NoError(t, err)

	require.Len(t, cache.Manifest.Documents, 3)
	assert.Equal(t, DocumentID("deployment.md"), cache.Manifest.Documents[0].ID)
	assert.Equal(t, DocumentID("overview.md"), cache.Manifest.Documents[1].ID)
	assert.Equal(t, DocumentID("security.md"), cache.Manifest.Documents[2].ID)
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, cache.Manifest.CacheVersion)
}
