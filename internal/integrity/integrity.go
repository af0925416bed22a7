// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package integrity validates the on-disk shape of a built cache against
// JSON Schemas, as a second-pass check independent of the loader's
// structural unmarshal.
package integrity

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

//go:embed index.schema.json
var indexSchemaJSON []byte

//go:embed document.schema.json
var documentSchemaJSON []byte

// Validator validates manifest.json, index.json, and document payload
// files against their compiled JSON Schemas.
type Validator struct {
	manifest *jsonschema.Schema
	index    *jsonschema.Schema
	document *jsonschema.Schema
}

// NewValidator compiles the embedded schemas and returns a ready Validator.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	manifest, err := compile(compiler, "manifest.schema.json", manifestSchemaJSON)
	if err != nil {
		return nil, err
	}
	index, err := compile(compiler, "index.schema.json", indexSchemaJSON)
	if err != nil {
		return nil, err
	}
	document, err := compile(compiler, "document.schema.json", documentSchemaJSON)
	if err != nil {
		return nil, err
	}

	return &Validator{manifest: manifest, index: index, document: document}, nil
}

func compile(compiler *jsonschema.Compiler, name string, raw []byte) (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("integrity: parse schema %s: %w", name, err)
	}
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("integrity: add schema resource %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("integrity: compile schema %s: %w", name, err)
	}
	return schema, nil
}

// ValidateManifest validates raw manifest.json bytes.
func (v *Validator) ValidateManifest(data []byte) []string {
	return validateAgainst(v.manifest, data)
}

// ValidateIndex validates raw index.json bytes.
func (v *Validator) ValidateIndex(data []byte) []string {
	return validateAgainst(v.index, data)
}

// ValidateDocument validates raw document payload bytes.
func (v *Validator) ValidateDocument(data []byte) []string {
	return validateAgainst(v.document, data)
}

// validateAgainst decodes data as generic JSON and validates it against
// schema, returning nil when valid or a flat list of human-readable
// violation messages otherwise.
func validateAgainst(schema *jsonschema.Schema, data []byte) []string {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}

	err := schema.Validate(instance)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	lines := strings.Split(ve.Error(), "\n")
	messages := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			messages = append(messages, line)
		}
	}
	return messages
}
