package index

// Document is one indexed file. Its id is its position in Memory.Docs,
// assigned in discovery order. TokenCount is the number of tokens the
// document's full text produced and is the term-frequency denominator at
// query time.
type Document struct {
	Path       string
	TokenCount int
}

// Posting records every position at which one term occurs in one document.
// Offsets are ascending 0-based token positions; their count is the raw
// term frequency.
type Posting struct {
	DocID   uint32
	Offsets []uint32
}

// Source is one document as handed to the builder. Discovering sources is
// the walker's concern, not the builder's.
type Source struct {
	Path string
	Text string
}

// Memory is a fully built in-memory index, ready for serialization.
// Each postings list is ordered by ascending DocID. Terms preserves the
// order in which terms were first seen across the corpus; the serializer
// writes blocks in exactly that order, so it is carried explicitly rather
// than recovered from map iteration.
type Memory struct {
	Docs     []Document
	Postings map[string][]Posting
	Terms    []string
}
