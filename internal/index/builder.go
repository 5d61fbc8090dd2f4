// Package index holds the in-memory inverted index and the builder that
// produces it from a set of document sources.
package index

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gwenf/tinysearch/internal/tokenizer"
)

// Build constructs the in-memory index for the given sources. Document ids
// are assigned in source order. A source with no word characters still gets
// a document entry (with TokenCount 0) but contributes no postings.
func Build(sources []Source) *Memory {
	m := &Memory{Postings: make(map[string][]Posting)}
	for docID, src := range sources {
		m.merge(uint32(docID), src.Path, tokenizer.Tokenize(src.Text))
	}
	return m
}

// BuildParallel tokenizes sources concurrently and merges the per-document
// results in source order, yielding output identical to Build. Tokenization
// is pure, so only the merge has to stay sequential. workers caps the
// number of concurrent tokenizers; values below 2 fall back to Build.
func BuildParallel(ctx context.Context, sources []Source, workers int) (*Memory, error) {
	if workers < 2 || len(sources) < 2 {
		return Build(sources), nil
	}
	tokenized := make([][]string, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range sources {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokenized[i] = tokenizer.Tokenize(sources[i].Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := &Memory{Postings: make(map[string][]Posting)}
	for docID, src := range sources {
		m.merge(uint32(docID), src.Path, tokenized[docID])
	}
	return m, nil
}

// merge folds one tokenized document into the index. It scans the token
// slice once, accumulating each term's offsets locally, then appends one
// posting per term to the global lists. Offsets come out ascending because
// the scan is in order; postings lists come out in ascending DocID because
// documents merge in id order.
func (m *Memory) merge(docID uint32, path string, tokens []string) {
	m.Docs = append(m.Docs, Document{Path: path, TokenCount: len(tokens)})

	local := make(map[string]*Posting)
	firstSeen := make([]string, 0, len(tokens))
	for i, term := range tokens {
		p, ok := local[term]
		if !ok {
			p = &Posting{DocID: docID}
			local[term] = p
			firstSeen = append(firstSeen, term)
		}
		p.Offsets = append(p.Offsets, uint32(i))
	}
	for _, term := range firstSeen {
		if _, known := m.Postings[term]; !known {
			m.Terms = append(m.Terms, term)
		}
		m.Postings[term] = append(m.Postings[term], *local[term])
	}
}
