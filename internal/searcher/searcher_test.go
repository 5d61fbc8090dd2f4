package searcher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gwenf/tinysearch/internal/index"
	"github.com/gwenf/tinysearch/internal/segment"
)

func openTestIndex(t testing.TB, sources []index.Source) *segment.Reader {
	t.Helper()
	dir := t.TempDir()
	if err := segment.NewWriter(dir).Write(index.Build(sources)); err != nil {
		t.Fatalf("writing index: %v", err)
	}
	rd, err := segment.Open(dir)
	if err != nil {
		t.Fatalf("opening index: %v", err)
	}
	t.Cleanup(func() { rd.Close() })
	return rd
}

// A term present in the only document has idf ln(1/1) = 0, so the document
// matches with a score of exactly zero and is still returned.
func TestSearchSingleDocumentScoresZero(t *testing.T) {
	rd := openTestIndex(t, []index.Source{{Path: "only.txt", Text: "hello"}})

	results, err := Search(rd, "hello", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Path != "only.txt" || results[0].Score != 0 {
		t.Errorf("got %+v, want only.txt with score 0", results[0])
	}
}

func TestSearchRanksHigherTFFirst(t *testing.T) {
	rd := openTestIndex(t, []index.Source{
		{Path: "a.txt", Text: "needle two three four five six seven eight nine ten"},
		{Path: "b.txt", Text: "needle needle needle needle needle six seven eight nine ten"},
		{Path: "c.txt", Text: "nothing relevant in here"},
	})
	results, err := Search(rd, "needle", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Path != "b.txt" {
		t.Errorf("ranked %q first, want b.txt (5 occurrences out of 10 tokens)", results[0].Path)
	}
	if !(results[0].Score > results[1].Score) {
		t.Errorf("scores not strictly ordered: %v", results)
	}
}

func TestSearchOutOfVocabulary(t *testing.T) {
	rd := openTestIndex(t, []index.Source{{Path: "a.txt", Text: "some indexed words"}})

	results, err := Search(rd, "zzz qqq", 0)
	if err != nil {
		t.Fatalf("out-of-vocabulary query must not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearchLimitsToTen(t *testing.T) {
	sources := make([]index.Source, 15)
	for i := range sources {
		// Every document shares "common"; padding terms vary per document
		// so term frequencies, and therefore scores, differ.
		sources[i] = index.Source{
			Path: fmt.Sprintf("doc%02d.txt", i),
			Text: "common rare" + strings.Repeat(fmt.Sprintf(" pad%d", i), i+1),
		}
	}
	// "rare" is missing from the last document so its idf is positive.
	sources[14].Text = "common only"
	rd := openTestIndex(t, sources)

	results, err := Search(rd, "rare", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("got %d results, want the top-10 cut", len(results))
	}
}

func TestSearchDuplicateQueryTokensCompound(t *testing.T) {
	rd := openTestIndex(t, []index.Source{
		{Path: "a.txt", Text: "needle hay hay hay"},
		{Path: "b.txt", Text: "hay hay hay hay"},
	})
	once, err := Search(rd, "needle", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	twice, err := Search(rd, "needle needle", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("unexpected result counts: %d and %d", len(once), len(twice))
	}
	want := 2 * once[0].Score
	if diff := twice[0].Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("repeated token scored %v, want %v (double the single-token score)", twice[0].Score, want)
	}
}

// A document matching only ubiquitous terms (idf 0) is excluded whenever
// some other document scored above zero.
func TestSearchDropsZeroScoresWhenPositiveExist(t *testing.T) {
	rd := openTestIndex(t, []index.Source{
		{Path: "a.txt", Text: "common special"},
		{Path: "b.txt", Text: "common filler"},
	})
	results, err := Search(rd, "common special", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %v", len(results), results)
	}
	if results[0].Path != "a.txt" || results[0].Score <= 0 {
		t.Errorf("got %+v, want a.txt with a positive score", results[0])
	}
}

func TestSearchTieBreaksByDocumentID(t *testing.T) {
	rd := openTestIndex(t, []index.Source{
		{Path: "second.txt", Text: "twin other"},
		{Path: "first.txt", Text: "twin extra"},
	})
	results, err := Search(rd, "twin", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Equal tf and idf: discovery order (ascending doc id) decides.
	if results[0].Path != "second.txt" || results[1].Path != "first.txt" {
		t.Errorf("tie not broken by ascending document id: %v", results)
	}
}

// BenchmarkSearch measures end-to-end query latency over a small synthetic
// corpus.
func BenchmarkSearch(b *testing.B) {
	sources := make([]index.Source, 200)
	for i := range sources {
		sources[i] = index.Source{
			Path: fmt.Sprintf("doc%03d.txt", i),
			Text: fmt.Sprintf("alpha beta gamma delta term%d shared words everywhere", i%17),
		}
	}
	rd := openTestIndex(b, sources)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results, err := Search(rd, "alpha term3 shared", 0)
		if err != nil {
			b.Fatal(err)
		}
		_ = results
	}
}
