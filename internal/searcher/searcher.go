// Package searcher ranks documents against free-text queries using the
// tf-idf weighting the index stores its statistics for.
package searcher

import (
	"fmt"
	"math"
	"sort"

	"github.com/gwenf/tinysearch/internal/segment"
	"github.com/gwenf/tinysearch/internal/tokenizer"
	pkgerrors "github.com/gwenf/tinysearch/pkg/errors"
)

// DefaultLimit caps the number of ranked results when the caller passes no
// limit of its own.
const DefaultLimit = 10

// Result is one ranked document.
type Result struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Search tokenizes query with the build-time tokenizer and scores every
// document containing at least one query term. For each token occurrence
// (repeated tokens compound, the query is not de-duplicated):
//
//	df  = postings / documents
//	idf = ln(1/df)
//	tf  = 1000 * occurrences_in_doc / doc_token_count
//
// and tf*idf accumulates per document. Results sort score-descending with
// ties broken by ascending document id; at most limit rows come back.
// Documents whose accumulated score is zero are dropped unless nothing
// scored above zero. A query with no in-vocabulary tokens returns an empty
// list, not an error.
func Search(rd *segment.Reader, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	scores := make(map[uint32]float64)
	for _, term := range tokenizer.Tokenize(query) {
		postings, err := rd.Lookup(term)
		if err != nil {
			return nil, err
		}
		if len(postings) == 0 {
			continue
		}
		df := float64(len(postings)) / float64(rd.DocCount())
		idf := math.Log(1 / df)
		for _, p := range postings {
			doc, ok := rd.Document(p.DocID)
			if !ok {
				return nil, fmt.Errorf("%w: postings for term %q reference unknown document %d",
					pkgerrors.ErrCorruptIndex, term, p.DocID)
			}
			// doc.TokenCount >= 1 whenever a posting exists: a document
			// only enters a postings list by contributing a token.
			tf := 1000 * float64(len(p.Offsets)) / float64(doc.TokenCount)
			scores[p.DocID] += tf * idf
		}
	}
	return rank(rd, scores, limit), nil
}

type scoredDoc struct {
	docID uint32
	score float64
}

func rank(rd *segment.Reader, scores map[uint32]float64, limit int) []Result {
	rows := make([]scoredDoc, 0, len(scores))
	anyPositive := false
	for id, score := range scores {
		if score > 0 {
			anyPositive = true
		}
		rows = append(rows, scoredDoc{docID: id, score: score})
	}
	// A zero score is possible only when every matched term occurs in every
	// document (idf 0). Keep such rows only when nothing scored higher.
	if anyPositive {
		kept := rows[:0]
		for _, row := range rows {
			if row.score > 0 {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].docID < rows[j].docID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	results := make([]Result, len(rows))
	for i, row := range rows {
		doc, _ := rd.Document(row.docID)
		results[i] = Result{Path: doc.Path, Score: row.score}
	}
	return results
}
