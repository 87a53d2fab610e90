package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleWriter_WritesEveryRecord(t *testing.T) {
	var out strings.Builder
	w := newWriter(&out, "\n", false)
	require.NoError(t, w.Write("a"))
	require.NoError(t, w.Write("a"))
	require.Equal(t, "a\na\n", out.String())
}

func TestUniqWriter_DedupsByteExact(t *testing.T) {
	var out strings.Builder
	w := newWriter(&out, "\n", true)
	require.NoError(t, w.Write("a"))
	require.NoError(t, w.Write("a"))
	require.NoError(t, w.Write("b"))
	require.Equal(t, "a\nb\n", out.String())
}
