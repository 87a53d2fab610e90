// Package record implements the chunked record iterator: it turns a byte
// stream into successive delimited records without ever buffering the
// whole stream, carrying partial records across chunk-read boundaries.
package record

import (
	"bytes"
	"io"
	"strings"
)

const chunkSize = 64 * 1024

// Record is one logical row: its raw (post \r\n-trim) text and its
// delimiter-split fields.
type Record struct {
	Raw    string
	Fields []string
}

// Iterator yields successive Records from r, splitting on sep (typically
// '\n') and further splitting each record's fields on delim.
type Iterator struct {
	r     io.Reader
	sep   byte
	delim byte

	buf   []byte
	carry []byte
	eof   bool
}

func New(r io.Reader, sep, delim byte) *Iterator {
	return &Iterator{
		r:     r,
		sep:   sep,
		delim: delim,
		buf:   make([]byte, chunkSize),
	}
}

// Next returns the next record, or ok=false once the stream is exhausted.
// A final non-empty carry with no trailing separator is yielded as the
// last record, matching spec.
func (it *Iterator) Next() (Record, bool, error) {
	for {
		if idx := bytes.IndexByte(it.carry, it.sep); idx >= 0 {
			line := it.carry[:idx]
			it.carry = it.carry[idx+1:]
			return it.makeRecord(line), true, nil
		}
		if it.eof {
			if len(it.carry) == 0 {
				return Record{}, false, nil
			}
			line := it.carry
			it.carry = nil
			return it.makeRecord(line), true, nil
		}

		n, err := it.r.Read(it.buf)
		if n > 0 {
			grown := make([]byte, len(it.carry)+n)
			copy(grown, it.carry)
			copy(grown[len(it.carry):], it.buf[:n])
			it.carry = grown
		}
		if err != nil {
			if err == io.EOF {
				it.eof = true
				continue
			}
			return Record{}, false, err
		}
	}
}

func (it *Iterator) makeRecord(line []byte) Record {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	raw := string(line)
	return Record{
		Raw:    raw,
		Fields: strings.Split(raw, string(it.delim)),
	}
}
