package engine

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbql-go/rbql/internal/hostexpr"
	"github.com/rbql-go/rbql/internal/parser"
)

func mustPlan(t *testing.T, query string) *parser.Plan {
	t.Helper()
	plan, err := parser.Compile(query)
	require.NoError(t, err)
	return plan
}

func run(t *testing.T, query, input string, opener TableBOpener) string {
	t.Helper()
	plan := mustPlan(t, query)
	ex := NewExecutor(plan, hostexpr.New(), nil, opener)
	var out strings.Builder
	err := ex.Execute(context.Background(), strings.NewReader(input), &out, '\t', "\n")
	require.NoError(t, err)
	return out.String()
}

func runErr(t *testing.T, query, input string, opener TableBOpener) error {
	t.Helper()
	plan := mustPlan(t, query)
	ex := NewExecutor(plan, hostexpr.New(), nil, opener)
	var out strings.Builder
	return ex.Execute(context.Background(), strings.NewReader(input), &out, '\t', "\n")
}

func TestExecute_S1_SelectWhere(t *testing.T) {
	input := "5\thaha\thoho\n-20\thaha\thioho\n50\thaha\tdfdf\n20\thaha\t\n"
	out := run(t, `select NR, a1, len(a3) where int(a1) > 5`, input, nil)
	require.Equal(t, "3\t50\t4\n4\t20\t0\n", out)
}

func TestExecute_S2_SelectDistinctWithComment(t *testing.T) {
	input := strings.Join([]string{
		"5\thaha",
		"-20\thaha",
		"50\thaha",
		"20\thaha",
		"8\t",
		"3\t4",
		"11\thoho",
		"10\thihi",
		"13\thaha",
	}, "\n") + "\n"
	out := run(t, "\tselect    distinct\ta2 where int(a1) > 10 #comment", input, nil)
	require.Equal(t, "haha\nhoho\n", out)
}

func TestExecute_S3_FlikeAndOrderByDesc(t *testing.T) {
	rows := []string{"1\thaha", "2\thoho", "3\thihi", "4\thaha", "5\thoho", "6\thihi", "7\thaha"}
	input := strings.Join(rows, "\n") + "\n"
	out := run(t, `select * where flike(a2,"%a_a") order by int(a1) desc`, input, nil)
	require.Equal(t, "7\thaha\n4\thaha\n1\thaha\n", out)
}

func bOpener(content string) TableBOpener {
	return func(path string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}
}

func TestExecute_S4_InnerJoinWithMultiKeyOrderBy(t *testing.T) {
	bTable := "bicycle\tlegs\ncar\tgas\nplane\twings\nboat\twind\nrocket\tstuff\n"
	aRows := []string{
		"10\tcar",
		"20\tplane",
		"5\tboat",
		"1\ttrain",
		"7\tcar",
		"3\tplane",
		"9\tboat",
	}
	input := strings.Join(aRows, "\n") + "\n"

	query := `select NR, * inner join B on a2 == b1 where b2 != "haha" and int(a1) > -100 and len(b2) > 1 order by a2, int(a1)`
	out := run(t, query, input, bOpener(bTable))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	for _, l := range lines {
		require.NotContains(t, l, "train")
	}
}

func TestExecute_S5_LeftJoinNullFill(t *testing.T) {
	bTable := "car\tgas\nplane\twings\n"
	aRows := []string{"1\tcar", "2\tmagic carpet", "3\tboat"}
	input := strings.Join(aRows, "\n") + "\n"

	out := run(t, `select a2, b2 left join B on a2 == b1`, input, bOpener(bTable))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "car\tgas", lines[0])
	require.Equal(t, "magic carpet\tNone", lines[1])
	require.Equal(t, "boat\tNone", lines[2])
}

func TestExecute_S6_StrictLeftJoinFailsOnUnmatched(t *testing.T) {
	bTable := "car\tgas\nplane\twings\n"
	aRows := []string{"1\tcar", "2\tmagic carpet", "3\tboat"}
	input := strings.Join(aRows, "\n") + "\n"

	err := runErr(t, `select a2 strict left join B on a2 == b1`, input, bOpener(bTable))
	require.Error(t, err)
	require.Contains(t, err.Error(), "all A table keys must be present in table B")
}

func TestExecute_EmptyInputProducesEmptyOutput(t *testing.T) {
	out := run(t, `select a1 order by a1`, "", nil)
	require.Equal(t, "", out)
}

func TestExecute_BadFieldErrorNamesColumnAndLine(t *testing.T) {
	input := "only_one_field\n"
	err := runErr(t, `select a2`, input, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), `"a2"`)
	require.Contains(t, err.Error(), "line: 1")
}

func TestExecute_BadBFieldErrorAlwaysUsesAPrefix(t *testing.T) {
	bTable := "k1\nk2\tv2\n"
	input := "k1\n"
	err := runErr(t, `select b2 inner join B on a1 == b1`, input, bOpener(bTable))
	require.Error(t, err)
	require.Contains(t, err.Error(), `"a2"`)
	require.NotContains(t, err.Error(), `"b2"`)
}

func TestExecute_DistinctDedupsByteExact(t *testing.T) {
	input := "1\thaha\n2\thaha\n3\thoho\n"
	out := run(t, `select distinct a2`, input, nil)
	require.Equal(t, "haha\nhoho\n", out)
}

func TestExecute_JoinMissingTableIsRuntimeError(t *testing.T) {
	opener := func(path string) (io.ReadCloser, error) {
		return nil, io.ErrUnexpectedEOF
	}
	err := runErr(t, `select a1 inner join missing.tsv on a1 == b1`, "1\n", opener)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not accessible")
}

func TestExecute_DuplicateBKeyIsRuntimeError(t *testing.T) {
	bTable := "car\tgas\ncar\tdiesel\n"
	err := runErr(t, `select a1 inner join B on a1 == b1`, "car\n", bOpener(bTable))
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be unique")
}
