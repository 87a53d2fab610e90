package engine

import "io"

// writer is the output-record sink: simpleWriter writes every record,
// uniqWriter deduplicates by exact output-byte match.
type writer interface {
	Write(record string) error
}

type simpleWriter struct {
	w   io.Writer
	sep string
}

func newSimpleWriter(w io.Writer, recordSep string) *simpleWriter {
	return &simpleWriter{w: w, sep: recordSep}
}

func (s *simpleWriter) Write(record string) error {
	_, err := io.WriteString(s.w, record+s.sep)
	return err
}

// uniqWriter wraps a simpleWriter, skipping any record byte-identical to one
// already emitted.
type uniqWriter struct {
	inner *simpleWriter
	seen  map[string]struct{}
}

func newUniqWriter(w io.Writer, recordSep string) *uniqWriter {
	return &uniqWriter{inner: newSimpleWriter(w, recordSep), seen: make(map[string]struct{})}
}

func (u *uniqWriter) Write(record string) error {
	if _, dup := u.seen[record]; dup {
		return nil
	}
	u.seen[record] = struct{}{}
	return u.inner.Write(record)
}

func newWriter(w io.Writer, recordSep string, distinct bool) writer {
	if distinct {
		return newUniqWriter(w, recordSep)
	}
	return newSimpleWriter(w, recordSep)
}
