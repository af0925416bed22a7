// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import "strings"

// Query is a normalized query against which documents are scored. Terms is
// produced by lower-casing Raw and splitting on Unicode whitespace; empty
// terms are never synthesized.
type Query struct {
	Raw   string
	Terms []string
}

// NewQuery normalizes raw into a Query.
func NewQuery(raw string) Query {
	return Query{Raw: raw, Terms: strings.Fields(strings.ToLower(raw))}
}

// ScoreDetails are the purely-derived components behind a document's
// score: the query terms it was scored against, how many of its tokens
// matched any of them, and its total token count.
type ScoreDetails struct {
	QueryTerms  []string `json:"query_terms"`
	TermMatches int      `json:"term_matches"`
	TotalWords  int      `json:"total_words"`
}

// Scorer is a capability contract: a pure doc+query → score-details
// function, plus a reduction of those details to a single score in
// [0.0, 1.0]. Implementations must not mutate either argument.
type Scorer interface {
	Score(doc Document, query Query) ScoreDetails
	ScoreValue(details ScoreDetails) float32
}

// TermFrequencyScorer is the v0 scorer: the ratio of content tokens that
// equal any query term to the document's total token count.
type TermFrequencyScorer struct{}

// Score lower-cases doc.Content, splits it on Unicode whitespace, and
// counts tokens equal to any term in query.Terms.
func (TermFrequencyScorer) Score(doc Document, query Query) ScoreDetails {
	words := strings.Fields(strings.ToLower(doc.Content))
	totalWords := len(words)

	var termMatches int
	if totalWords > 0 && len(query.Terms) > 0 {
		wanted := make(map[string]struct{}, len(query.Terms))
		for _, term := range query.Terms {
			wanted[term] = struct{}{}
		}
		for _, word := range words {
			if _, ok := wanted[word]; ok {
				termMatches++
			}
		}
	}

	return ScoreDetails{
		QueryTerms:  append([]string(nil), query.Terms...),
		TermMatches: termMatches,
		TotalWords:  totalWords,
	}
}

// ScoreValue reduces details to term_matches/total_words, or 0.0 when the
// document has no tokens. The result is always in [0.0, 1.0].
func (TermFrequencyScorer) ScoreValue(details ScoreDetails) float32 {
	if details.TotalWords == 0 {
		return 0.0
	}
	return float32(details.TermMatches) / float32(details.TotalWords)
}
