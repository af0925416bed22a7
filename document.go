// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import "unicode/utf8"

// Document is the atomic, immutable unit of content. IngestDocument always
// recomputes Version from Content — it never accepts a version from the
// caller — so Version == DocumentVersionFromContent(Content.bytes()) holds
// for every Document it returns.
type Document struct {
	ID       DocumentID      `json:"id"`
	Version  DocumentVersion `json:"version"`
	Source   string          `json:"source"`
	Content  string          `json:"content"`
	Metadata Metadata        `json:"metadata"`
}

// IngestDocument constructs a Document from raw bytes. It validates that
// raw is UTF-8, failing with a DocumentError of kind DocInvalidUTF8
// otherwise, and computes Version from the validated content. No newline,
// case, or whitespace normalization occurs.
func IngestDocument(id DocumentID, source string, raw []byte, metadata Metadata) (Document, error) {
	if !utf8.Valid(raw) {
		return Document{}, &DocumentError{Kind: DocInvalidUTF8, ID: string(id)}
	}

	content := string(raw)
	version := DocumentVersionFromContent([]byte(content))

	return Document{
		ID:       id,
		Version:  version,
		Source:   source,
		Content:  content,
		Metadata: metadata.Clone(),
	}, nil
}
