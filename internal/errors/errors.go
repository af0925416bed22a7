// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package errors provides enhanced error handling with actionable guidance
// for the ctxcache CLI.
package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error with actionable guidance for users.
type UserError struct {
	Title      string   // Clear, concise error title
	Context    string   // Why this error matters
	Solutions  []string // Ordered list of things to try
	DocsTopic  string   // Related docs topic (optional)
	Underlying error    // Original error (optional)
}

// Error implements the error interface.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Title)
	b.WriteString("\n")

	if e.Context != "" {
		b.WriteString("\n")
		b.WriteString(e.Context)
		b.WriteString("\n")
	}

	if len(e.Solutions) > 0 {
		b.WriteString("\nTry these solutions:\n")
		for i, solution := range e.Solutions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, solution)
		}
	}

	if e.DocsTopic != "" {
		fmt.Fprintf(&b, "\nFor more help: ctxcache docs %s\n", e.DocsTopic)
	}

	if e.Underlying != nil {
		fmt.Fprintf(&b, "\nDetails: %v\n", e.Underlying)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain inspection.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// OutputExistsError creates an error for a cache build whose output
// directory is already occupied.
func OutputExistsError(dir string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Cache output directory already exists: %s", dir),
		Context: "ctxcache build never overwrites an existing cache directory, to avoid silently discarding a previous build.",
		Solutions: []string{
			"Choose a different --output directory",
			"Remove the existing directory if you intend to rebuild it",
		},
		DocsTopic:  "build",
		Underlying: err,
	}
}

// DuplicateDocumentError creates an error for a build whose input set
// contains two documents sharing an id.
func DuplicateDocumentError(id string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Duplicate document id: %s", id),
		Context: "Every document in a cache build must have a unique id.",
		Solutions: []string{
			"Check your source directory for two files that normalize to the same id",
			"Rename or remove the duplicate source file",
		},
		DocsTopic:  "ingest",
		Underlying: err,
	}
}

// InvalidDocumentError creates an error for source content that failed
// ingestion, such as invalid UTF-8.
func InvalidDocumentError(source string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Could not ingest document: %s", source),
		Context: "Document content must be valid UTF-8 text.",
		Solutions: []string{
			"Check the file's encoding and re-save it as UTF-8",
			"Exclude binary files from the ingestion root",
		},
		DocsTopic:  "ingest",
		Underlying: err,
	}
}

// CacheLoadError wraps a failure to load or validate an existing cache
// directory.
func CacheLoadError(root string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Failed to load cache: %s", root),
		Context: "The cache directory is missing, unreadable, or its contents no longer match its manifest.",
		Solutions: []string{
			"Verify the path points at a directory produced by ctxcache build",
			"Rebuild the cache with ctxcache build",
			"Check for a partially-completed build left behind by a prior crash",
		},
		DocsTopic:  "load",
		Underlying: err,
	}
}

// ConfigError wraps a failure to parse a YAML configuration file.
func ConfigError(path string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Failed to parse configuration: %s", path),
		Context: "The YAML syntax in your configuration file is invalid, or a field has the wrong type.",
		Solutions: []string{
			"Check for proper YAML indentation (use spaces, not tabs)",
			"Verify all strings with special characters are quoted",
			"Compare against the documented configuration schema",
		},
		DocsTopic:  "config",
		Underlying: err,
	}
}

// IntegrityError wraps a JSON Schema validation failure detected while
// reading a cache file.
func IntegrityError(file string, errs []string) *UserError {
	details := strings.Join(errs, "\n  - ")
	return &UserError{
		Title:   fmt.Sprintf("Cache file failed integrity validation: %s", file),
		Context: "The file's structure does not match the schema ctxcache expects, which usually means external tampering or a version mismatch.",
		Solutions: []string{
			"Rebuild the cache with the current version of ctxcache",
			"Confirm nothing outside ctxcache is editing files under the cache directory",
		},
		DocsTopic:  "integrity",
		Underlying: fmt.Errorf("schema violations:\n  - %s", details),
	}
}

// WriteError creates an error for a failure to write a generated file.
func WriteError(path string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Failed to write file: %s", path),
		Context: "ctxcache could not write to the target path.",
		Solutions: []string{
			"Check that you have write permissions in the output directory",
			"Verify there is enough disk space available",
			"Ensure the parent directory exists and is writable",
		},
		Underlying: err,
	}
}
