package record

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []Record {
	t.Helper()
	it := New(strings.NewReader(input), '\n', '\t')
	var out []Record
	for {
		rec, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out
}

func TestIterator_BasicSplit(t *testing.T) {
	recs := collect(t, "a\tb\nc\td\n")
	require.Len(t, recs, 2)
	require.Equal(t, []string{"a", "b"}, recs[0].Fields)
	require.Equal(t, []string{"c", "d"}, recs[1].Fields)
}

func TestIterator_TrailingCarryWithoutSeparator(t *testing.T) {
	recs := collect(t, "a\tb\nc\td")
	require.Len(t, recs, 2)
	require.Equal(t, "c\td", recs[1].Raw)
}

func TestIterator_TrimsTrailingCR(t *testing.T) {
	recs := collect(t, "a\tb\r\nc\td\r\n")
	require.Equal(t, "a\tb", recs[0].Raw)
}

func TestIterator_EmptyStreamYieldsNoRecords(t *testing.T) {
	recs := collect(t, "")
	require.Empty(t, recs)
}

func TestIterator_EmptyLineYieldsSingleEmptyField(t *testing.T) {
	recs := collect(t, "\n")
	require.Len(t, recs, 1)
	require.Equal(t, []string{""}, recs[0].Fields)
}

type chunkedReader struct {
	data []byte
	pos  int
	step int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.step
	if n > len(p) {
		n = len(p)
	}
	if c.pos+n > len(c.data) {
		n = len(c.data) - c.pos
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

func TestIterator_RecordSpanningSmallChunks(t *testing.T) {
	it := New(&chunkedReader{data: []byte("aaaaaaaaaa\tbb\ncc\tdd\n"), step: 3}, '\n', '\t')
	var recs []Record
	for {
		rec, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		recs = append(recs, rec)
	}
	require.Len(t, recs, 2)
	require.Equal(t, []string{"aaaaaaaaaa", "bb"}, recs[0].Fields)
	require.Equal(t, []string{"cc", "dd"}, recs[1].Fields)
}
