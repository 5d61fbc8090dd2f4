package index

import (
	"context"
	"reflect"
	"testing"
)

func TestBuildOffsets(t *testing.T) {
	m := Build([]Source{{Path: "a.txt", Text: "a b a"}})

	if len(m.Docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(m.Docs))
	}
	if m.Docs[0].TokenCount != 3 {
		t.Errorf("token count = %d, want 3", m.Docs[0].TokenCount)
	}
	wantA := []Posting{{DocID: 0, Offsets: []uint32{0, 2}}}
	if !reflect.DeepEqual(m.Postings["a"], wantA) {
		t.Errorf(`postings["a"] = %v, want %v`, m.Postings["a"], wantA)
	}
	wantB := []Posting{{DocID: 0, Offsets: []uint32{1}}}
	if !reflect.DeepEqual(m.Postings["b"], wantB) {
		t.Errorf(`postings["b"] = %v, want %v`, m.Postings["b"], wantB)
	}
}

func TestBuildAssignsIDsInDiscoveryOrder(t *testing.T) {
	m := Build([]Source{
		{Path: "first.txt", Text: "shared alpha"},
		{Path: "second.txt", Text: "shared beta"},
		{Path: "third.txt", Text: "shared alpha beta"},
	})

	for i, want := range []string{"first.txt", "second.txt", "third.txt"} {
		if m.Docs[i].Path != want {
			t.Errorf("doc %d path = %q, want %q", i, m.Docs[i].Path, want)
		}
	}
	shared := m.Postings["shared"]
	if len(shared) != 3 {
		t.Fatalf(`postings["shared"] has %d entries, want 3`, len(shared))
	}
	for i, p := range shared {
		if p.DocID != uint32(i) {
			t.Errorf("posting %d has doc id %d, want ascending ids", i, p.DocID)
		}
	}
}

func TestBuildTermOrderIsFirstDiscovery(t *testing.T) {
	m := Build([]Source{
		{Path: "one.txt", Text: "zebra apple"},
		{Path: "two.txt", Text: "apple mango zebra"},
	})
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(m.Terms, want) {
		t.Errorf("term order = %v, want %v", m.Terms, want)
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	m := Build([]Source{
		{Path: "empty.txt", Text: "...!?"},
		{Path: "real.txt", Text: "word"},
	})
	if m.Docs[0].TokenCount != 0 {
		t.Errorf("empty document token count = %d, want 0", m.Docs[0].TokenCount)
	}
	if got := m.Postings["word"][0].DocID; got != 1 {
		t.Errorf("posting doc id = %d, want 1", got)
	}
	for term, ps := range m.Postings {
		for _, p := range ps {
			if p.DocID == 0 {
				t.Errorf("empty document appears in postings for %q", term)
			}
		}
	}
}

func TestBuildParallelMatchesBuild(t *testing.T) {
	sources := []Source{
		{Path: "a.txt", Text: "the quick brown fox jumps over the lazy dog"},
		{Path: "b.txt", Text: "pack my box with five dozen liquor jugs"},
		{Path: "c.txt", Text: "the five boxing wizards jump quickly"},
		{Path: "d.txt", Text: ""},
		{Path: "e.txt", Text: "quick quick quick"},
	}
	sequential := Build(sources)
	parallel, err := BuildParallel(context.Background(), sources, 4)
	if err != nil {
		t.Fatalf("BuildParallel: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Errorf("parallel build diverged from sequential build")
	}
}

func TestBuildParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sources := []Source{
		{Path: "a.txt", Text: "alpha"},
		{Path: "b.txt", Text: "beta"},
	}
	if _, err := BuildParallel(ctx, sources, 2); err == nil {
		t.Error("expected error from canceled context")
	}
}
