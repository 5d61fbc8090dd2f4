package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "a b a", []string{"a", "b", "a"}},
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"punctuation separates", "foo,bar.baz!qux", []string{"foo", "bar", "baz", "qux"}},
		{"digits and underscore are word characters", "snake_case v2 3rd", []string{"snake_case", "v2", "3rd"}},
		{"collapses separator runs", "  a\t\n--b  ", []string{"a", "b"}},
		{"empty input", "", nil},
		{"no word characters", "!?.,;: --- ...", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	text := "The quick_brown fox, v2.0 — jumps over 13 lazy dogs!"
	first := Tokenize(text)
	second := Tokenize(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("tokenizing the same text twice diverged: %v vs %v", first, second)
	}
}

// BenchmarkTokenize measures tokenization throughput on a short prose
// paragraph.
func BenchmarkTokenize(b *testing.B) {
	text := "Full-text search splits documents into terms, records where each " +
		"term occurs, and ranks matching documents by how rare and how " +
		"frequent the query terms are."
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokens := Tokenize(text)
		_ = tokens
	}
}
