// Package segment reads and writes the on-disk index artifacts: the
// document table, the term directory, and the packed postings blob.
package segment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gwenf/tinysearch/internal/index"
)

// Artifact file names inside the index directory.
const (
	DocumentsFile = "documents.csv"
	TermsFile     = "terms.csv"
	PostingsFile  = "postings.dat"
)

// TermBlock locates one term's postings inside the blob. Blocks are
// non-overlapping and, taken in directory order, exactly partition the
// blob.
type TermBlock struct {
	Term   string
	Offset uint32
	Length uint32
}

// Writer serialises a built index into an artifact directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting the given artifact directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write produces all three artifacts. Each file is written to a .tmp
// sibling and renamed into place on success; any failure aborts the whole
// build with no partial-success mode.
func (w *Writer) Write(m *index.Memory) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	blocks, err := w.writePostings(m)
	if err != nil {
		return err
	}
	if err := w.writeDocuments(m.Docs); err != nil {
		return err
	}
	return w.writeTerms(blocks)
}

// writePostings streams each term's encoded postings into the blob in
// first-discovery term order and returns the byte range each block landed
// in. The first block starts at offset 0; each subsequent offset is the
// running byte total.
func (w *Writer) writePostings(m *index.Memory) ([]TermBlock, error) {
	path := filepath.Join(w.dir, PostingsFile)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("creating postings blob: %w", err)
	}
	blocks := make([]TermBlock, 0, len(m.Terms))
	var offset uint32
	for _, term := range m.Terms {
		block := encodePostings(m.Postings[term])
		if _, err := f.Write(block); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing postings for term %q: %w", term, err)
		}
		blocks = append(blocks, TermBlock{
			Term:   term,
			Offset: offset,
			Length: uint32(len(block)),
		})
		offset += uint32(len(block))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return nil, fmt.Errorf("syncing postings blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing postings blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("renaming postings blob: %w", err)
	}
	return blocks, nil
}

func (w *Writer) writeDocuments(docs []index.Document) error {
	return w.writeTable(DocumentsFile, func(out *csv.Writer) error {
		for _, doc := range docs {
			if err := out.Write([]string{doc.Path, strconv.Itoa(doc.TokenCount)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) writeTerms(blocks []TermBlock) error {
	return w.writeTable(TermsFile, func(out *csv.Writer) error {
		for _, b := range blocks {
			row := []string{
				b.Term,
				strconv.FormatUint(uint64(b.Offset), 10),
				strconv.FormatUint(uint64(b.Length), 10),
			}
			if err := out.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTable writes one CSV artifact through the same tmp-and-rename path
// as the blob.
func (w *Writer) writeTable(name string, fill func(*csv.Writer) error) error {
	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	out := csv.NewWriter(f)
	if err := fill(out); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	out.Flush()
	if err := out.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s: %w", name, err)
	}
	return nil
}
