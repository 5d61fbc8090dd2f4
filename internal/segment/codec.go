package segment

import (
	"encoding/binary"
	"fmt"

	"github.com/gwenf/tinysearch/internal/index"
	pkgerrors "github.com/gwenf/tinysearch/pkg/errors"
)

// Postings are packed little-endian: a 4-byte doc id, a 4-byte offset
// count, then count 4-byte offsets, repeated per posting with no padding.
// A term's postings sit back to back with no framing; the term directory
// records each block's byte range out of band.

func encodePostings(postings []index.Posting) []byte {
	size := 0
	for _, p := range postings {
		size += 8 + 4*len(p.Offsets)
	}
	buf := make([]byte, 0, size)
	for _, p := range postings {
		buf = binary.LittleEndian.AppendUint32(buf, p.DocID)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.Offsets)))
		for _, off := range p.Offsets {
			buf = binary.LittleEndian.AppendUint32(buf, off)
		}
	}
	return buf
}

// decodePostings decodes one term's block. The cursor must land exactly on
// the end of the block; an overrun or underrun means the blob and the term
// directory disagree and is reported as corruption, never truncated.
func decodePostings(data []byte) ([]index.Posting, error) {
	var postings []index.Posting
	pos := 0
	for pos < len(data) {
		if len(data)-pos < 8 {
			return nil, fmt.Errorf("%w: truncated posting header at byte %d of block",
				pkgerrors.ErrCorruptIndex, pos)
		}
		docID := binary.LittleEndian.Uint32(data[pos:])
		count := binary.LittleEndian.Uint32(data[pos+4:])
		pos += 8
		if remaining := len(data) - pos; remaining < int(count)*4 {
			return nil, fmt.Errorf("%w: posting for document %d declares %d offsets but block has %d bytes left",
				pkgerrors.ErrCorruptIndex, docID, count, remaining)
		}
		offsets := make([]uint32, count)
		for i := range offsets {
			offsets[i] = binary.LittleEndian.Uint32(data[pos:])
			pos += 4
		}
		postings = append(postings, index.Posting{DocID: docID, Offsets: offsets})
	}
	return postings, nil
}
