// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxTokenCounter_EmptyContentIsZero(t *testing.T) {
	c := ApproxTokenCounter{}
	assert.Equal(t, 0, c.CountTokens(""))
}

func TestApproxTokenCounter_CeilsByteLength(t *testing.T) {
	c := ApproxTokenCounter{}
	assert.Equal(t, 1, c.CountTokens("a"))
	assert.Equal(t, 1, c.CountTokens("abcd"))
	assert.Equal(t, 2, c.CountTokens("abcde"))
	assert.Equal(t, 3, c.CountTokens("abcdefghi"))
}

func TestApproxTokenCounter_CountsBytesNotRunes(t *testing.T) {
	c := ApproxTokenCounter{}
	// "café" is 4 runes but 5 bytes (é is 2 bytes in UTF-8).
	assert.Equal(t, 2, c.CountTokens("café"))
}
