// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	contextcore "github.com/contextenginehq/context-core-go"
	ctxerrors "github.com/contextenginehq/context-core-go/internal/errors"
)

// Inspect loads the cache at cacheDir, verifies it against the cache
// JSON Schemas, and prints a short summary.
func Inspect(cacheDir string) error {
	cache, err := contextcore.LoadContextCache(cacheDir)
	if err != nil {
		return ctxerrors.CacheLoadError(cacheDir, err)
	}

	if err := cache.Verify(); err != nil {
		return ctxerrors.CacheLoadError(cacheDir, err)
	}

	fmt.Printf("cache_version:  %s\n", cache.Manifest.CacheVersion)
	fmt.Printf("build_config:   version=%s hash_algorithm=%s\n",
		cache.Manifest.BuildConfig.Version, cache.Manifest.BuildConfig.HashAlgorithm)
	fmt.Printf("created_at:     %s\n", cache.Manifest.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Printf("document_count: %d\n", cache.Manifest.DocumentCount)
	fmt.Println("integrity:      ok")
	return nil
}
