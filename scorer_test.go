// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery_LowercasesAndSplits(t *testing.T) {
	q := NewQuery("Deployment   Guide")
	assert.Equal(t, []string{"deployment", "guide"}, q.Terms)
	assert.Equal(t, "Deployment   Guide", q.Raw)
}

func TestNewQuery_EmptyRawHasNoTerms(t *testing.T) {
	q := NewQuery("")
	assert.Empty(t, q.Terms)
}

func TestTermFrequencyScorer_Scenario1(t *testing.T) {
	doc, err := IngestDocument("docs/deployment.md", "docs/deployment.md",
		[]byte("Deployment deployment deployment guide."), NewMetadata())
	require.NoError(t, err)

	scorer := TermFrequencyScorer{}
	query := NewQuery("deployment")

	details := scorer.Score(doc, query)
	assert.Equal(t, 3, details.TermMatches)
	assert.Equal(t, 4, details.TotalWords)
	assert.InDelta(t, float32(0.75), scorer.ScoreValue(details), 1e-9)
}

func TestTermFrequencyScorer_EmptyDocumentScoresZero(t *testing.T) {
	doc, err := IngestDocument("empty.md", "empty.md", []byte(""), NewMetadata())
	require.NoError(t, err)

	scorer := TermFrequencyScorer{}
	details := scorer.Score(doc, NewQuery("anything"))
	assert.Equal(t, 0, details.TotalWords)
	assert.Equal(t, 0, details.TermMatches)
	assert.Equal(t, float32(0.0), scorer.ScoreValue(details))
}

func TestTermFrequencyScorer_EmptyQueryMatchesNothing(t *testing.T) {
	doc, err := IngestDocument("a.md", "a.md", []byte("apple banana"), NewMetadata())
	require.NoError(t, err)

	scorer := TermFrequencyScorer{}
	details := scorer.Score(doc, NewQuery(""))
	assert.Equal(t, 0, details.TermMatches)
	assert.Equal(t, 2, details.TotalWords)
}

func TestTermFrequencyScorer_DuplicateQueryTermsDoNotDoubleCount(t *testing.T) {
	doc, err := IngestDocument("a.md", "a.md", []byte("foo bar"), NewMetadata())
	require.NoError(t, err)

	scorer := TermFrequencyScorer{}
	details := scorer.Score(doc, NewQuery("foo foo"))
	assert.Equal(t, 1, details.TermMatches)
}

func TestTermFrequencyScorer_ScoreBounded(t *testing.T) {
	doc, err := IngestDocument("a.md", "a.md", []byte("apple apple apple"), NewMetadata())
	require.NoError(t, err)

	scorer := TermFrequencyScorer{}
	details := scorer.Score(doc, NewQuery("apple"))
	score := scorer.ScoreValue(details)
	assert.GreaterOrEqual(t, score, float32(0.0))
	assert.LessOrEqual(t, score, float32(1.0))
}
