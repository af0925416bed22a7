// Copyright 2026 Open Boundary Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextcore

import "sort"

// SelectionWhy explains why a SelectedDocument received its score: the
// terms it was matched against, how many tokens matched, and its total
// token count.
type SelectionWhy struct {
	QueryTerms  []string `json:"query_terms"`
	TermMatches int      `json:"term_matches"`
	TotalWords  int      `json:"total_words"`
}

// SelectedDocument is one admitted row of a SelectionResult. It carries a
// full copy of the document's content, not a reference, so the result is
// self-contained.
type SelectedDocument struct {
	ID      string       `json:"id"`
	Version string       `json:"version"`
	Content string       `json:"content"`
	Score   float32      `json:"score"`
	Tokens  int          `json:"tokens"`
	Why     SelectionWhy `json:"why"`
}

// SelectionMetadata records the outcome of a selection call.
type SelectionMetadata struct {
	Query                     string `json:"query"`
	Budget                    int    `json:"budget"`
	TokensUsed                int    `json:"tokens_used"`
	DocumentsConsidered       int    `json:"documents_considered"`
	DocumentsSelected         int    `json:"documents_selected"`
	DocumentsExcludedByBudget int    `json:"documents_excluded_by_budget"`
}

// SelectionResult is the fully-explanatory output of ContextSelector.Select.
type SelectionResult struct {
	Documents []SelectedDocument `json:"documents"`
	Selection SelectionMetadata  `json:"selection"`
}

// scoredDocument is an internal, pre-selection record holding a document
// alongside its score and token count.
type scoredDocument struct {
	document   Document
	score      float32
	details    ScoreDetails
	tokenCount int
}

// ContextSelector runs the load → score → order → budget pipeline. It is
// generic over Scorer and TokenCounter implementations, selected at
// construction time.
type ContextSelector struct {
	scorer  Scorer
	counter TokenCounter
}

// NewContextSelector builds a ContextSelector from the given scorer and
// token counter.
func NewContextSelector(scorer Scorer, counter TokenCounter) *ContextSelector {
	return &ContextSelector{scorer: scorer, counter: counter}
}

// NewDefaultContextSelector builds a ContextSelector using the v0
// TermFrequencyScorer and ApproxTokenCounter.
func NewDefaultContextSelector() *ContextSelector {
	return NewContextSelector(TermFrequencyScorer{}, ApproxTokenCounter{})
}

// Select loads every document from cache, scores and tokenizes each,
// orders them by descending score with ascending id as a tiebreak, and
// admits documents into the budget in that order. Selection never fails
// once the cache loads successfully.
func (s *ContextSelector) Select(cache *ContextCache, query Query, budget int) (SelectionResult, error) {
	loaded, err := cache.LoadDocuments()
	if err != nil {
		return SelectionResult{}, &SelectionError{Kind: SelectCacheError, Err: err}
	}

	scored := make([]scoredDocument, len(loaded))
	for i, doc := range loaded {
		details := s.scorer.Score(doc, query)
		scored[i] = scoredDocument{
			document:   doc,
			score:      s.scorer.ScoreValue(details),
			details:    details,
			tokenCount: s.counter.CountTokens(doc.Content),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if cmp := compareScores(scored[i].score, scored[j].score); cmp != 0 {
			return cmp > 0
		}
		return scored[i].document.ID < scored[j].document.ID
	})

	documents := make([]SelectedDocument, 0, len(scored))
	tokensUsed := 0
	documentsSelected := 0
	documentsExcluded := 0

	for _, sd := range scored {
		if tokensUsed+sd.tokenCount <= budget {
			documents = append(documents, SelectedDocument{
				ID:      string(sd.document.ID),
				Version: string(sd.document.Version),
				Content: sd.document.Content,
				Score:   sd.score,
				Tokens:  sd.tokenCount,
				Why: SelectionWhy{
					QueryTerms:  sd.details.QueryTerms,
					TermMatches: sd.details.TermMatches,
					TotalWords:  sd.details.TotalWords,
				},
			})
			tokensUsed += sd.tokenCount
			documentsSelected++
		} else {
			documentsExcluded++
		}
	}

	return SelectionResult{
		Documents: documents,
		Selection: SelectionMetadata{
			Query:                     query.Raw,
			Budget:                    budget,
			TokensUsed:                tokensUsed,
			DocumentsConsidered:       len(loaded),
			DocumentsSelected:         documentsSelected,
			DocumentsExcludedByBudget: documentsExcluded,
		},
	}, nil
}

// compareScores returns 1 if a should sort before b, -1 if b should sort
// before a, and 0 if they are equal — treating NaN as equal to everything
// (a safety net; the v0 scorer cannot produce NaN).
func compareScores(a, b float32) int {
	aNaN := a != a
	bNaN := b != b
	switch {
	case aNaN || bNaN:
		return 0
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
