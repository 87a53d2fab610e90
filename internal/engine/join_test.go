package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbql-go/rbql/internal/parser"
)

func TestLoadJoinIndex_ComputesFieldsMaxLen(t *testing.T) {
	idx, err := loadJoinIndex(strings.NewReader("a\t1\nb\t2\tx\n"), &parser.JoinPlan{BIndex: 0}, '\t')
	require.NoError(t, err)
	require.Equal(t, 3, idx.fieldsMaxLen)
	require.Equal(t, []string{"b", "2", "x"}, idx.rows["b"])
}

func TestLookup_InnerSkipsUnmatched(t *testing.T) {
	idx := &joinIndex{rows: map[string][]string{"k": {"v"}}}
	outcome, err := lookup(parser.JoinInner, idx, "missing")
	require.NoError(t, err)
	require.True(t, outcome.skip)
}

func TestLookup_LeftNullFillsUnmatched(t *testing.T) {
	idx := &joinIndex{rows: map[string][]string{"k": {"v1", "v2"}}, fieldsMaxLen: 2}
	outcome, err := lookup(parser.JoinLeft, idx, "missing")
	require.NoError(t, err)
	require.Equal(t, []string{"None", "None"}, outcome.bfields)
}

func TestLookup_StrictLeftFailsUnmatched(t *testing.T) {
	idx := &joinIndex{rows: map[string][]string{"k": {"v"}}}
	_, err := lookup(parser.JoinStrictLeft, idx, "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), `Key "missing" was not found`)
}
