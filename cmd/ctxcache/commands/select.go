// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	contextcore "github.com/contextenginehq/context-core-go"
	"github.com/contextenginehq/context-core-go/internal/config"
	ctxerrors "github.com/contextenginehq/context-core-go/internal/errors"
)

// Select loads the cache at cacheDir, runs the v0 selector against query,
// and prints the resulting SelectionResult as JSON to stdout.
func Select(cacheDir, query string, budget int, configPath string) error {
	cfg := config.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return ctxerrors.ConfigError(configPath, err)
		}
		cfg = loaded
	}
	if budget <= 0 {
		budget = cfg.Select.Budget
	}

	cache, err := contextcore.LoadContextCache(cacheDir)
	if err != nil {
		return ctxerrors.CacheLoadError(cacheDir, err)
	}

	selector := contextcore.NewDefaultContextSelector()
	result, err := selector.Select(cache, contextcore.NewQuery(query), budget)
	if err != nil {
		return ctxerrors.CacheLoadError(cacheDir, err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("select: encoding result: %w", err)
	}

	_, err = os.Stdout.Write(append(encoded, '\n'))
	return err
}
