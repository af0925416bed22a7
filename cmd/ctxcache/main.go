// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the CLI entry point for ctxcache, the
// context-core cache builder and selector.
package main

import (
	"fmt"
	"os"

	"github.com/contextenginehq/context-core-go/cmd/ctxcache/commands"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	var (
		buildOutputDir string
		buildConfig    string
		selectBudget   int
		selectConfig   string
	)

	rootCmd := &cobra.Command{
		Use:   "ctxcache",
		Short: "Deterministic context cache builder and selector",
		Long: `ctxcache builds a deterministic, content-addressed context cache from a
directory of documents, and selects a token-budgeted subset of it for a
given query.`,
	}

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ctxcache version {{.Version}}\n")

	buildCmd := &cobra.Command{
		Use:   "build [source-dir]",
		Short: "Build a cache from a directory of documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Build(args[0], buildOutputDir, buildConfig)
		},
	}
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "ctxcache-out", "Output directory for the built cache")
	buildCmd.Flags().StringVarP(&buildConfig, "config", "c", "", "Optional YAML configuration file")

	selectCmd := &cobra.Command{
		Use:   "select [cache-dir] [query]",
		Short: "Select a token-budgeted set of documents from a built cache",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Select(args[0], args[1], selectBudget, selectConfig)
		},
	}
	selectCmd.Flags().IntVarP(&selectBudget, "budget", "b", 0, "Token budget (overrides config default)")
	selectCmd.Flags().StringVarP(&selectConfig, "config", "c", "", "Optional YAML configuration file")

	inspectCmd := &cobra.Command{
		Use:   "inspect [cache-dir]",
		Short: "Load and verify a built cache's integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Inspect(args[0])
		},
	}

	rootCmd.AddCommand(buildCmd, selectCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
