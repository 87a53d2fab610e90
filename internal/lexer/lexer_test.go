package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbql-go/rbql/internal/token"
)

func TestLex_StringLiteralPreservedVerbatim(t *testing.T) {
	tokens, err := Lex(`select a1 where a2 == "hello # not a comment"`)
	require.NoError(t, err)

	var found bool
	for _, tk := range tokens {
		if tk.Kind == token.StringLiteral {
			require.Equal(t, `"hello # not a comment"`, tk.Text)
			found = true
		}
	}
	require.True(t, found, "expected a string literal token")
}

func TestLex_CommentStripped(t *testing.T) {
	tokens, err := Lex(`select a1 #comment here`)
	require.NoError(t, err)
	require.Equal(t, `select a1`, token.Join(tokens))
}

func TestLex_TabsBecomeSpaces(t *testing.T) {
	tokens, err := Lex("\tselect    distinct\ta2")
	require.NoError(t, err)
	require.NotContains(t, token.Join(tokens), "\t")
}

func TestLex_EscapedQuoteStaysInLiteral(t *testing.T) {
	tokens, err := Lex(`select a1 where a2 == 'it\'s fine'`)
	require.NoError(t, err)

	var lit string
	for _, tk := range tokens {
		if tk.Kind == token.StringLiteral {
			lit = tk.Text
		}
	}
	require.Equal(t, `'it\'s fine'`, lit)
}

func TestLex_UnterminatedLiteralIsParsingError(t *testing.T) {
	_, err := Lex("select a1 where a2 == 'oops")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line: 1")
}

func TestLex_TripleQuotedLiteralIsParsingError(t *testing.T) {
	_, err := Lex(`select a1 where a1 == '''closed'''`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line: 1")
}

func TestLex_TripleDoubleQuotedLiteralIsParsingError(t *testing.T) {
	_, err := Lex(`select a1 where a1 == """closed"""`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line: 1")
}

func TestLex_BoundaryCharactersSplit(t *testing.T) {
	tokens, err := Lex(`a1==a2`)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range tokens {
		kinds = append(kinds, tk.Kind)
	}
	require.Equal(t, []token.Kind{token.AlphanumRaw, token.SymbolRaw, token.SymbolRaw, token.AlphanumRaw}, kinds)
}

func TestLex_WhitespaceCollapsedAndTrimmed(t *testing.T) {
	tokens, err := Lex("  select   a1  ")
	require.NoError(t, err)
	require.NotEqual(t, token.Whitespace, tokens[0].Kind)
	require.NotEqual(t, token.Whitespace, tokens[len(tokens)-1].Kind)

	var wsRuns int
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Kind == token.Whitespace && tokens[i-1].Kind == token.Whitespace {
			wsRuns++
		}
	}
	require.Zero(t, wsRuns, "consecutive whitespace tokens should be collapsed")
}
