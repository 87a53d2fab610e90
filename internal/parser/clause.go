// Package parser turns a normalized token stream into a compiled query
// Plan: clause splitting, column-variable rewriting, and join-expression
// extraction.
package parser

import (
	"strings"

	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/token"
)

// ClauseKind identifies one of the recognized top-level keyword phrases.
type ClauseKind int

const (
	Select ClauseKind = iota + 1
	SelectDistinct
	InnerJoin
	LeftJoin
	StrictLeftJoin
	Where
	OrderBy
)

func (k ClauseKind) String() string {
	return clauseDescriptions[k]
}

var clauseDescriptions = map[ClauseKind]string{
	Select:         "SELECT",
	SelectDistinct: "SELECT DISTINCT",
	InnerJoin:      "INNER JOIN",
	LeftJoin:       "LEFT JOIN",
	StrictLeftJoin: "STRICT LEFT JOIN",
	Where:          "WHERE",
	OrderBy:        "ORDER BY",
}

func (k ClauseKind) IsJoin() bool {
	return k == InnerJoin || k == LeftJoin || k == StrictLeftJoin
}

// clausePhrase is one recognized keyword phrase and the words it is made
// of, used for longest-match scanning over the token stream.
type clausePhrase struct {
	kind  ClauseKind
	words []string
}

// Ordered longest-phrase-first within a shared prefix so that e.g.
// "SELECT DISTINCT" is tried before "SELECT" wins by being a prefix of it.
var phrases = []clausePhrase{
	{SelectDistinct, []string{"SELECT", "DISTINCT"}},
	{Select, []string{"SELECT"}},
	{StrictLeftJoin, []string{"STRICT", "LEFT", "JOIN"}},
	{LeftJoin, []string{"LEFT", "JOIN"}},
	{InnerJoin, []string{"INNER", "JOIN"}},
	{Where, []string{"WHERE"}},
	{OrderBy, []string{"ORDER", "BY"}},
}

// ClauseMap maps each recognized clause to its token-sequence body.
type ClauseMap map[ClauseKind][]token.Token

// Split scans the normalized token list left to right, matching the
// longest known clause keyword phrase at each position, and partitions the
// remaining tokens into clause bodies. A duplicate clause match, or a
// missing SELECT/SELECT DISTINCT, is a ParsingError.
func Split(tokens []token.Token) (ClauseMap, error) {
	clauses := make(ClauseMap)

	var order []ClauseKind
	starts := make(map[ClauseKind]int)
	ends := make(map[ClauseKind]int)

	i := 0
	for i < len(tokens) {
		kind, width, ok := matchPhraseAt(tokens, i)
		if !ok {
			i++
			continue
		}
		if _, dup := starts[kind]; dup {
			return nil, rbqlerr.NewParsingError(`More than one "%s" statements found`, kind.String())
		}
		if len(order) > 0 {
			prev := order[len(order)-1]
			ends[prev] = i
		}
		order = append(order, kind)
		starts[kind] = i
		i += width
	}
	if len(order) > 0 {
		ends[order[len(order)-1]] = len(tokens)
	}

	for _, kind := range order {
		bodyStart := starts[kind]
		bodyEnd := ends[kind]
		phraseWidth := phraseWordCountFor(kind)
		clauses[kind] = tokens[bodyStart+phraseWidth : bodyEnd]
	}

	if _, hasSelect := clauses[Select]; !hasSelect {
		if _, hasDistinct := clauses[SelectDistinct]; !hasDistinct {
			return nil, rbqlerr.NewParsingError("Query must contain a SELECT statement")
		}
	}

	return clauses, nil
}

func phraseWordCountFor(kind ClauseKind) int {
	for _, p := range phrases {
		if p.kind == kind {
			return wordSpanWidth(p.words)
		}
	}
	return 0
}

// matchPhraseAt tries every known phrase at position i (longest first,
// since phrases is ordered that way within shared prefixes) and returns
// the matching clause kind and the number of source tokens the phrase's
// words span (including interior whitespace).
func matchPhraseAt(tokens []token.Token, i int) (ClauseKind, int, bool) {
	for _, p := range phrases {
		if width, ok := tryMatchWords(tokens, i, p.words); ok {
			return p.kind, width, true
		}
	}
	return 0, 0, false
}

// tryMatchWords checks whether tokens[i:] begins with the given words
// (case-insensitive, non-string-literal tokens only), allowing a single
// run of whitespace between each word. Returns the number of tokens
// consumed.
func tryMatchWords(tokens []token.Token, i int, words []string) (int, bool) {
	pos := i
	for wi, word := range words {
		if wi > 0 {
			if pos >= len(tokens) || tokens[pos].Kind != token.Whitespace {
				return 0, false
			}
			pos++
		}
		if pos >= len(tokens) {
			return 0, false
		}
		text, ok := tokens[pos].MatchableText()
		if !ok || strings.ToUpper(text) != word {
			return 0, false
		}
		pos++
	}
	return pos - i, true
}

func wordSpanWidth(words []string) int {
	return len(words)*2 - 1
}
