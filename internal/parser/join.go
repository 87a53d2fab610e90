package parser

import (
	"strings"

	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/token"
)

// JoinExpr is the result of parsing a join clause body: the B table path
// and the two sides of the equi-join, with a/b normalized so AField always
// names an A-column (e.g. "a2") and BField a B-column (e.g. "b1").
type JoinExpr struct {
	TablePath string
	AField    string
	BField    string
}

const badJoinSyntax = `Incorrect join syntax. Must be: "<JOIN> /path/to/B/table on a<i> == b<j>"`

// ParseJoin validates and extracts the join operands from a join clause's
// raw (pre-column-rewrite) token body.
func ParseJoin(body []token.Token) (JoinExpr, error) {
	collapsed := collapseToWords(body)
	words := strings.Fields(collapsed)
	if len(words) != 5 {
		return JoinExpr{}, rbqlerr.NewParsingError(badJoinSyntax)
	}

	path, on, lhs, eq, rhs := words[0], words[1], words[2], words[3], words[4]
	if !strings.EqualFold(on, "ON") || eq != "==" {
		return JoinExpr{}, rbqlerr.NewParsingError(badJoinSyntax)
	}

	lhsIsA, rhsIsB := aColumnRef.MatchString(lhs), bColumnRef.MatchString(rhs)
	lhsIsB, rhsIsA := bColumnRef.MatchString(lhs), aColumnRef.MatchString(rhs)

	switch {
	case lhsIsA && rhsIsB:
		return JoinExpr{TablePath: path, AField: lhs, BField: rhs}, nil
	case lhsIsB && rhsIsA:
		return JoinExpr{TablePath: path, AField: rhs, BField: lhs}, nil
	default:
		return JoinExpr{}, rbqlerr.NewParsingError(badJoinSyntax)
	}
}

// collapseToWords renders a token run back to text, collapsing every
// whitespace token (regardless of original width) to a single space so the
// subsequent strings.Fields split produces exactly the "words" of the
// clause body.
func collapseToWords(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind == token.Whitespace {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
