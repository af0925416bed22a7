// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"encoding/json"
	"time"
)

// CacheBuildConfig carries the build-time configuration that participates
// in cache versioning alongside document content.
type CacheBuildConfig struct {
	Version       string `json:"version"`
	HashAlgorithm string `json:"hash_algorithm"`
}

// CacheBuildConfigV0 is the canonical "v0" build configuration.
func CacheBuildConfigV0() CacheBuildConfig {
	return CacheBuildConfig{Version: "1", HashAlgorithm: "sha256"}
}

// ManifestDocumentEntry describes one document within a CacheManifest.
// File is always a forward-slash relative path of the form
// "documents/<12hex>.json".
type ManifestDocumentEntry struct {
	ID      DocumentID      `json:"id"`
	Version DocumentVersion `json:"version"`
	File    string          `json:"file"`
}

// CacheManifest is the authoritative description of a built cache. Field
// order is fixed and is part of the on-disk contract: cache_version,
// build_config, created_at, document_count, documents. CreatedAt is
// informational only; every other field is a pure function of the build
// inputs.
type CacheManifest struct {
	CacheVersion  string                  `json:"cache_version"`
	BuildConfig   CacheBuildConfig        `json:"build_config"`
	CreatedAt     time.Time               `json:"created_at"`
	DocumentCount int                     `json:"document_count"`
	Documents     []ManifestDocumentEntry `json:"documents"`
}

// CacheIndex is a lookup from DocumentID to the on-disk relative path of
// its payload file, serialized transparently as a JSON object with keys in
// lexicographic order.
type CacheIndex struct {
	entries map[DocumentID]string
}

// NewCacheIndex wraps a DocumentID-to-path mapping as a CacheIndex.
func NewCacheIndex(entries map[DocumentID]string) CacheIndex {
	return CacheIndex{entries: entries}
}

// Lookup returns the relative path stored for id, if any.
func (c CacheIndex) Lookup(id DocumentID) (string, bool) {
	path, ok := c.entries[id]
	return path, ok
}

// Len returns the number of entries in the index.
func (c CacheIndex) Len() int { return len(c.entries) }

// MarshalJSON emits the mapping as a plain JSON object (not wrapped), keys
// in lexicographic order.
func (c CacheIndex) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return json.Marshal(map[DocumentID]string{})
	}
	return json.Marshal(c.entries)
}

// UnmarshalJSON reads a plain JSON object into the mapping.
func (c *CacheIndex) UnmarshalJSON(data []byte) error {
	var entries map[DocumentID]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.entries = entries
	return nil
}
