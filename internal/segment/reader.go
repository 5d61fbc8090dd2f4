package segment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gwenf/tinysearch/internal/index"
	pkgerrors "github.com/gwenf/tinysearch/pkg/errors"
)

// Reader answers term lookups against a serialized index. The document
// table and term directory are loaded eagerly; the postings blob stays on
// disk behind positioned reads, so a lookup touches only the queried
// term's bytes. A Reader is safe for concurrent Lookup calls.
type Reader struct {
	docs     []index.Document
	terms    map[string]TermBlock
	postings *os.File
}

// Open loads the index artifacts under dir. Missing artifacts surface
// pkg/errors.ErrIndexNotFound; malformed tables surface ErrCorruptIndex.
func Open(dir string) (*Reader, error) {
	docs, err := readDocuments(filepath.Join(dir, DocumentsFile))
	if err != nil {
		return nil, err
	}
	terms, err := readTerms(filepath.Join(dir, TermsFile))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(dir, PostingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: missing %s in %s", pkgerrors.ErrIndexNotFound, PostingsFile, dir)
		}
		return nil, fmt.Errorf("opening postings blob: %w", err)
	}
	return &Reader{docs: docs, terms: terms, postings: f}, nil
}

// Lookup returns the postings for term. An absent term yields an empty
// list and no error: out-of-vocabulary words are a normal query outcome.
func (r *Reader) Lookup(term string) ([]index.Posting, error) {
	block, ok := r.terms[term]
	if !ok {
		return nil, nil
	}
	data := make([]byte, block.Length)
	if _, err := r.postings.ReadAt(data, int64(block.Offset)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: term %q byte range [%d,%d) runs past the end of the blob",
				pkgerrors.ErrCorruptIndex, term, block.Offset, block.Offset+block.Length)
		}
		return nil, fmt.Errorf("reading postings for term %q: %w", term, err)
	}
	postings, err := decodePostings(data)
	if err != nil {
		return nil, fmt.Errorf("term %q: %w", term, err)
	}
	return postings, nil
}

// Document returns the document with the given id.
func (r *Reader) Document(docID uint32) (index.Document, bool) {
	if int(docID) >= len(r.docs) {
		return index.Document{}, false
	}
	return r.docs[docID], true
}

// DocCount returns the number of indexed documents.
func (r *Reader) DocCount() int {
	return len(r.docs)
}

// TermCount returns the vocabulary size.
func (r *Reader) TermCount() int {
	return len(r.terms)
}

// BlobSize returns the postings blob's size in bytes.
func (r *Reader) BlobSize() (int64, error) {
	info, err := r.postings.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat postings blob: %w", err)
	}
	return info.Size(), nil
}

// Close releases the postings blob handle.
func (r *Reader) Close() error {
	return r.postings.Close()
}

func readDocuments(path string) ([]index.Document, error) {
	rows, err := readTable(path, 2)
	if err != nil {
		return nil, err
	}
	docs := make([]index.Document, 0, len(rows))
	for i, row := range rows {
		count, err := strconv.Atoi(row[1])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: document row %d has token count %q",
				pkgerrors.ErrCorruptIndex, i, row[1])
		}
		docs = append(docs, index.Document{Path: row[0], TokenCount: count})
	}
	return docs, nil
}

func readTerms(path string) (map[string]TermBlock, error) {
	rows, err := readTable(path, 3)
	if err != nil {
		return nil, err
	}
	terms := make(map[string]TermBlock, len(rows))
	for i, row := range rows {
		offset, offErr := strconv.ParseUint(row[1], 10, 32)
		length, lenErr := strconv.ParseUint(row[2], 10, 32)
		if offErr != nil || lenErr != nil {
			return nil, fmt.Errorf("%w: term row %d has byte range %q,%q",
				pkgerrors.ErrCorruptIndex, i, row[1], row[2])
		}
		terms[row[0]] = TermBlock{
			Term:   row[0],
			Offset: uint32(offset),
			Length: uint32(length),
		}
	}
	return terms, nil
}

func readTable(path string, arity int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: missing %s", pkgerrors.ErrIndexNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	in := csv.NewReader(f)
	in.FieldsPerRecord = -1
	rows, err := in.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pkgerrors.ErrCorruptIndex, filepath.Base(path), err)
	}
	for i, row := range rows {
		if len(row) != arity {
			return nil, fmt.Errorf("%w: %s row %d has %d fields, want %d",
				pkgerrors.ErrCorruptIndex, filepath.Base(path), i, len(row), arity)
		}
	}
	return rows, nil
}
