package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_BasicSelectWhere(t *testing.T) {
	plan, err := Compile(`select NR, a1, len(a3) where int(a1) > 5`)
	require.NoError(t, err)
	require.Equal(t, []string{"NR", "fields[0]", "len(fields[2])"}, plan.SelectExprs)
	require.Equal(t, "int(fields[0]) > 5", plan.WhereExpr)
	require.False(t, plan.Distinct)
	require.Nil(t, plan.Join)
	require.Nil(t, plan.OrderBy)
}

func TestCompile_SelectDistinctWithComment(t *testing.T) {
	plan, err := Compile("\tselect    distinct\ta2 where int(a1) > 10 #comment")
	require.NoError(t, err)
	require.True(t, plan.Distinct)
	require.Equal(t, []string{"fields[1]"}, plan.SelectExprs)
	require.Equal(t, "int(fields[0]) > 10", plan.WhereExpr)
}

func TestCompile_StarIsolated(t *testing.T) {
	plan, err := Compile(`select a1, *, a3`)
	require.NoError(t, err)
	require.Equal(t, []string{"fields[0]", "star_line", "fields[2]"}, plan.SelectExprs)
}

func TestCompile_StarNotIsolatedInFunctionCall(t *testing.T) {
	plan, err := Compile(`select func(*)`)
	require.NoError(t, err)
	require.Equal(t, []string{"func(*)"}, plan.SelectExprs)
}

func TestCompile_OrderByDescending(t *testing.T) {
	plan, err := Compile(`select * where flike(a2,"%a_a") order by int(a1) desc`)
	require.NoError(t, err)
	require.NotNil(t, plan.OrderBy)
	require.True(t, plan.OrderBy.Descending)
	require.Equal(t, "int(fields[0])", plan.OrderBy.KeyExpr)
}

func TestCompile_OrderByAscendingIsDefaultAndAscWordIsIgnored(t *testing.T) {
	plan, err := Compile(`select a1 order by a1 asc`)
	require.NoError(t, err)
	require.False(t, plan.OrderBy.Descending)
	require.Equal(t, "fields[0]", plan.OrderBy.KeyExpr)
}

func TestCompile_InnerJoin(t *testing.T) {
	plan, err := Compile(`select NR, * inner join ./b.tsv on a2 == b1 where b2 != "haha" and int(a1) > -100 and len(b2) > 1 order by a2, int(a1)`)
	require.NoError(t, err)
	require.NotNil(t, plan.Join)
	require.Equal(t, JoinInner, plan.Join.Mode)
	require.Equal(t, "./b.tsv", plan.Join.TablePath)
	require.Equal(t, 1, plan.Join.AIndex)
	require.Equal(t, 0, plan.Join.BIndex)
	require.Equal(t, `bfields[1] != "haha" and int(fields[0]) > -100 and len(bfields[1]) > 1`, plan.WhereExpr)
}

func TestCompile_JoinOperandsCanBeReversed(t *testing.T) {
	plan, err := Compile(`select a1 left join ./b.tsv on b3 == a5`)
	require.NoError(t, err)
	require.Equal(t, JoinLeft, plan.Join.Mode)
	require.Equal(t, 4, plan.Join.AIndex)
	require.Equal(t, 2, plan.Join.BIndex)
}

func TestCompile_StrictLeftJoin(t *testing.T) {
	plan, err := Compile(`select a1 strict left join ./b.tsv on a1 == b1`)
	require.NoError(t, err)
	require.Equal(t, JoinStrictLeft, plan.Join.Mode)
}

func TestCompile_MissingSelectIsParsingError(t *testing.T) {
	_, err := Compile(`where a1 > 5`)
	require.Error(t, err)
}

func TestCompile_DuplicateClauseIsParsingError(t *testing.T) {
	_, err := Compile(`select a1 where a1 > 1 where a2 > 2`)
	require.Error(t, err)
	require.Contains(t, err.Error(), `"WHERE"`)
}

func TestCompile_MalformedJoinIsParsingError(t *testing.T) {
	_, err := Compile(`select a1 inner join ./b.tsv on a1 = b1`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Incorrect join syntax")
}

func TestCompile_JoinBothSidesSameTableIsParsingError(t *testing.T) {
	_, err := Compile(`select a1 inner join ./b.tsv on a1 == a2`)
	require.Error(t, err)
}

func TestSplit_KeywordsAreCaseInsensitive(t *testing.T) {
	plan, err := Compile(`SeLeCt a1 WheRe a1 > 1`)
	require.NoError(t, err)
	require.Equal(t, "fields[0] > 1", plan.WhereExpr)
}
