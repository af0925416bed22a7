// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contextenginehq/context-core-go/internal/integrity"
)

// ContextCache is a read-only view over a materialized cache directory.
// It is intentionally thin: no mutation, no "update" methods, runtime
// reads only.
type ContextCache struct {
	Root     string
	Manifest CacheManifest
}

// LoadContextCache reads manifest.json from root and returns a
// ContextCache over it. It does not read document payloads; call
// LoadDocuments for that.
func LoadContextCache(root string) (*ContextCache, error) {
	path := filepath.Join(root, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CacheLoadError{Kind: LoadIO, Detail: path, Err: err}
	}

	var manifest CacheManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &CacheLoadError{Kind: LoadIO, Detail: path, Err: err}
	}

	return &ContextCache{Root: root, Manifest: manifest}, nil
}

// LoadDocuments reads every document named in the manifest, in manifest
// order, enforcing two integrity checks per entry: the payload's id must
// equal the manifest's id, and recomputing the version from the payload's
// content must yield the manifest's version. Either mismatch fails with a
// CacheLoadError of kind LoadInvalidData.
func (c *ContextCache) LoadDocuments() ([]Document, error) {
	docs := make([]Document, 0, len(c.Manifest.Documents))

	for _, entry := range c.Manifest.Documents {
		path := filepath.Join(c.Root, filepath.FromSlash(entry.File))

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &CacheLoadError{Kind: LoadIO, Detail: path, Err: err}
		}

		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &CacheLoadError{Kind: LoadIO, Detail: path, Err: err}
		}

		if doc.ID != entry.ID {
			return nil, &CacheLoadError{
				Kind: LoadInvalidData,
				Detail: fmt.Sprintf("manifest id %q does not match payload id %q at %s",
					entry.ID, doc.ID, path),
			}
		}

		expected := DocumentVersionFromContent([]byte(doc.Content))
		if expected != entry.Version {
			return nil, &CacheLoadError{
				Kind: LoadInvalidData,
				Detail: fmt.Sprintf("document %q: manifest says version %q, content hashes to %q",
					entry.ID, entry.Version, expected),
			}
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// Verify re-validates manifest.json, index.json, and every document
// payload named in the manifest against the cache's JSON Schemas. It is a
// second-pass check independent of the structural unmarshal LoadDocuments
// performs, intended for use by tooling that audits a cache rather than
// selects from it.
func (c *ContextCache) Verify() error {
	validator, err := integrity.NewValidator()
	if err != nil {
		return &CacheLoadError{Kind: LoadIO, Detail: c.Root, Err: err}
	}

	manifestPath := filepath.Join(c.Root, "manifest.json")
	manifestData, err := os.ReadFile(manifestPath)
	if err != nil {
		return &CacheLoadError{Kind: LoadIO, Detail: manifestPath, Err: err}
	}
	if violations := validator.ValidateManifest(manifestData); len(violations) > 0 {
		return &CacheLoadError{
			Kind:   LoadInvalidData,
			Detail: fmt.Sprintf("%s: %v", manifestPath, violations),
		}
	}

	indexPath := filepath.Join(c.Root, "index.json")
	indexData, err := os.ReadFile(indexPath)
	if err != nil {
		return &CacheLoadError{Kind: LoadIO, Detail: indexPath, Err: err}
	}
	if violations := validator.ValidateIndex(indexData); len(violations) > 0 {
		return &CacheLoadError{
			Kind:   LoadInvalidData,
			Detail: fmt.Sprintf("%s: %v", indexPath, violations),
		}
	}

	for _, entry := range c.Manifest.Documents {
		path := filepath.Join(c.Root, filepath.FromSlash(entry.File))
		data, err := os.ReadFile(path)
		if err != nil {
			return &CacheLoadError{Kind: LoadIO, Detail: path, Err: err}
		}
		if violations := validator.ValidateDocument(data); len(violations) > 0 {
			return &CacheLoadError{
				Kind:   LoadInvalidData,
				Detail: fmt.Sprintf("%s: %v", path, violations),
			}
		}
	}

	return nil
}
