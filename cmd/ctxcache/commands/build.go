// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	contextcore "github.com/contextenginehq/context-core-go"
	"github.com/contextenginehq/context-core-go/internal/config"
	ctxerrors "github.com/contextenginehq/context-core-go/internal/errors"
)

// Build ingests every regular file under sourceDir and builds a
// deterministic cache at outputDir.
func Build(sourceDir, outputDir, configPath string) error {
	cfg := config.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return ctxerrors.ConfigError(configPath, err)
		}
		cfg = loaded
	}

	documents, err := ingestDirectory(sourceDir)
	if err != nil {
		return err
	}

	builder := contextcore.NewCacheBuilder(contextcore.CacheBuildConfig{
		Version:       cfg.Build.Version,
		HashAlgorithm: cfg.Build.HashAlgorithm,
	})

	cache, err := builder.Build(documents, outputDir)
	if err != nil {
		return translateBuildError(outputDir, err)
	}

	fmt.Printf("Built cache %s with %d document(s) at %s/\n",
		cache.Manifest.CacheVersion, cache.Manifest.DocumentCount, outputDir)
	return nil
}

// ingestDirectory walks sourceDir and ingests every regular file it finds
// as a Document, skipping nothing: callers are expected to point sourceDir
// at a corpus of text documents.
func ingestDirectory(sourceDir string) ([]contextcore.Document, error) {
	var documents []contextcore.Document

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		id, err := contextcore.DocumentIDFromPath(sourceDir, path)
		if err != nil {
			return ctxerrors.InvalidDocumentError(path, err)
		}

		doc, err := contextcore.IngestDocument(id, path, raw, contextcore.NewMetadata())
		if err != nil {
			return ctxerrors.InvalidDocumentError(path, err)
		}

		documents = append(documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return documents, nil
}

// translateBuildError maps a contextcore.CacheBuildError into the
// CLI-facing UserError taxonomy.
func translateBuildError(outputDir string, err error) error {
	var buildErr *contextcore.CacheBuildError
	if !errors.As(err, &buildErr) {
		return err
	}

	switch buildErr.Kind {
	case contextcore.BuildOutputExists:
		return ctxerrors.OutputExistsError(outputDir, err)
	case contextcore.BuildDuplicateDocumentID:
		return ctxerrors.DuplicateDocumentError(buildErr.Detail, err)
	default:
		return err
	}
}
