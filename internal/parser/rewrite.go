package parser

import (
	"regexp"
	"strconv"

	"github.com/rbql-go/rbql/internal/token"
)

var (
	aColumnRef = regexp.MustCompile(`^a([1-9][0-9]*)$`)
	bColumnRef = regexp.MustCompile(`^b([1-9][0-9]*)$`)
)

// RewriteColumns rewrites every non-string-literal token matching `aN` or
// `bN` into a `fields[N-1]`/`bfields[N-1]` field reference. When selectClause
// is true, an isolated `*` token is additionally rewritten to `star_line`.
func RewriteColumns(tokens []token.Token, selectClause bool) []token.Token {
	out := make([]token.Token, len(tokens))
	copy(out, tokens)

	for i, t := range out {
		text, ok := t.MatchableText()
		if !ok {
			continue
		}
		switch {
		case t.Kind == token.AlphanumRaw && aColumnRef.MatchString(text):
			n, _ := strconv.Atoi(aColumnRef.FindStringSubmatch(text)[1])
			out[i] = token.New(token.Raw, "fields["+strconv.Itoa(n-1)+"]")
		case t.Kind == token.AlphanumRaw && bColumnRef.MatchString(text):
			n, _ := strconv.Atoi(bColumnRef.FindStringSubmatch(text)[1])
			out[i] = token.New(token.Raw, "bfields["+strconv.Itoa(n-1)+"]")
		case selectClause && t.Kind == token.SymbolRaw && text == "*" && isIsolatedStar(out, i):
			out[i] = token.New(token.Raw, "star_line")
		}
	}
	return out
}

// isIsolatedStar implements the star-expansion heuristic exactly: `*` is
// isolated iff the nearest non-whitespace token on each side (if any) is a
// comma. So `a1, *, a3`
// qualifies but `func(*)` does not, because the neighbors are `(` and `)`.
func isIsolatedStar(tokens []token.Token, i int) bool {
	left := nearestNonWhitespace(tokens, i, -1)
	right := nearestNonWhitespace(tokens, i, 1)

	if left != nil {
		text, ok := left.MatchableText()
		if !ok || text != "," {
			return false
		}
	}
	if right != nil {
		text, ok := right.MatchableText()
		if !ok || text != "," {
			return false
		}
	}
	return true
}

func nearestNonWhitespace(tokens []token.Token, i, dir int) *token.Token {
	for j := i + dir; j >= 0 && j < len(tokens); j += dir {
		if tokens[j].Kind != token.Whitespace {
			return &tokens[j]
		}
	}
	return nil
}
