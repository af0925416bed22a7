// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// versionPrefix is the fixed "sha256:" header of every DocumentVersion.
const versionPrefix = "sha256:"

// filenameStemLength is the number of hex characters from a document's
// version that become its payload filename stem.
const filenameStemLength = 12

// CacheBuilder deterministically materializes a set of Documents as a
// crash-safe, reproducible on-disk cache directory. It is single-threaded
// and non-reentrant: callers must not run two builds against the same
// output_dir concurrently.
type CacheBuilder struct {
	config CacheBuildConfig
}

// NewCacheBuilder returns a CacheBuilder that will stamp every cache it
// builds with config.
func NewCacheBuilder(config CacheBuildConfig) *CacheBuilder {
	return &CacheBuilder{config: config}
}

// Build materializes documents into outputDir and returns a ContextCache
// over the result. outputDir must not already exist. Any failure aborts
// the build without partially populating outputDir; a staging directory
// may be left behind for inspection or cleanup.
func (b *CacheBuilder) Build(documents []Document, outputDir string) (*ContextCache, error) {
	if _, err := os.Stat(outputDir); err == nil {
		return nil, &CacheBuildError{Kind: BuildOutputExists, Detail: outputDir}
	} else if !os.IsNotExist(err) {
		return nil, &CacheBuildError{Kind: BuildIO, Detail: outputDir, Err: err}
	}

	sorted := append([]Document(nil), documents...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, &CacheBuildError{Kind: BuildDuplicateDocumentID, Detail: string(sorted[i].ID)}
		}
	}

	configJSON, err := json.Marshal(b.config)
	if err != nil {
		return nil, &CacheBuildError{Kind: BuildSerialization, Err: err}
	}

	hasher := sha256.New()
	hasher.Write(configJSON)

	type staged struct {
		doc   Document
		entry ManifestDocumentEntry
	}

	entries := make([]staged, 0, len(sorted))
	indexEntries := make(map[DocumentID]string, len(sorted))
	seenStems := make(map[string]struct{}, len(sorted))

	for _, doc := range sorted {
		hasher.Write([]byte(string(doc.ID) + ":" + string(doc.Version)))

		versionStr := string(doc.Version)
		if !strings.HasPrefix(versionStr, versionPrefix) ||
			len(versionStr)-len(versionPrefix) < filenameStemLength {
			return nil, &CacheBuildError{Kind: BuildInvalidVersionFormat, Detail: versionStr}
		}

		stem := versionStr[len(versionPrefix) : len(versionPrefix)+filenameStemLength]
		if _, collides := seenStems[stem]; collides {
			return nil, &CacheBuildError{Kind: BuildFilenameCollision, Detail: stem}
		}
		seenStems[stem] = struct{}{}

		relFile := "documents/" + stem + ".json"
		entry := ManifestDocumentEntry{ID: doc.ID, Version: doc.Version, File: relFile}
		entries = append(entries, staged{doc: doc, entry: entry})
		indexEntries[doc.ID] = relFile
	}

	cacheVersion := versionPrefix + hex.EncodeToString(hasher.Sum(nil))

	manifestDocs := make([]ManifestDocumentEntry, len(entries))
	for i, e := range entries {
		manifestDocs[i] = e.entry
	}

	manifest := CacheManifest{
		CacheVersion:  cacheVersion,
		BuildConfig:   b.config,
		CreatedAt:     time.Now().UTC(),
		DocumentCount: len(sorted),
		Documents:     manifestDocs,
	}

	// The staging directory embeds a fragment of the prospective
	// cache_version (the 12 hex characters right after "sha256:") so that
	// successive builds of different content never collide on a stale
	// staging directory.
	fragment := cacheVersion[len(versionPrefix) : len(versionPrefix)+filenameStemLength]
	tempDir := outputDir + ".tmp." + fragment

	if _, err := os.Stat(tempDir); err == nil {
		if err := os.RemoveAll(tempDir); err != nil {
			return nil, &CacheBuildError{Kind: BuildIO, Detail: tempDir, Err: err}
		}
	}
	if err := os.MkdirAll(filepath.Join(tempDir, "documents"), 0o755); err != nil {
		return nil, &CacheBuildError{Kind: BuildIO, Detail: tempDir, Err: err}
	}

	for _, e := range entries {
		data, err := json.Marshal(e.doc)
		if err != nil {
			return nil, &CacheBuildError{Kind: BuildSerialization, Err: err}
		}
		path := filepath.Join(tempDir, filepath.FromSlash(e.entry.File))
		if err := writeFileSynced(path, data); err != nil {
			return nil, &CacheBuildError{Kind: BuildIO, Detail: path, Err: err}
		}
	}

	index := NewCacheIndex(indexEntries)
	indexData, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, &CacheBuildError{Kind: BuildSerialization, Err: err}
	}
	indexPath := filepath.Join(tempDir, "index.json")
	if err := writeFileSynced(indexPath, indexData); err != nil {
		return nil, &CacheBuildError{Kind: BuildIO, Detail: indexPath, Err: err}
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, &CacheBuildError{Kind: BuildSerialization, Err: err}
	}
	manifestPath := filepath.Join(tempDir, "manifest.json")
	if err := writeFileSynced(manifestPath, manifestData); err != nil {
		return nil, &CacheBuildError{Kind: BuildIO, Detail: manifestPath, Err: err}
	}

	if err := os.Rename(tempDir, outputDir); err != nil {
		return nil, &CacheBuildError{Kind: BuildIO, Detail: outputDir, Err: err}
	}

	return &ContextCache{Root: outputDir, Manifest: manifest}, nil
}

// writeFileSynced writes data to path and flushes it to stable storage
// before returning, so a crash immediately after Build cannot leave a
// torn payload behind.
func writeFileSynced(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
