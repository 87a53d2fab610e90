// Package hostexpr is the default implementation of hostapi.Evaluator: a
// small hand-rolled precedence-climbing interpreter for the host
// expression sub-language spec.md §6/§9 requires (arithmetic, comparisons,
// boolean logic, string concatenation, field indexing, and a small
// function library). It is grounded on the operator-precedence table and
// Pratt-style parseExprPrec used for SQL expressions elsewhere in the
// retrieval pack, adapted here from SQL-expression parsing to this
// smaller, row-context-driven sub-language.
package hostexpr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokOp
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokDot
)

type tok struct {
	kind tokKind
	text string
}

type exprLexer struct {
	src string
	pos int
}

func newExprLexer(src string) *exprLexer {
	return &exprLexer{src: src}
}

func (l *exprLexer) tokenize() ([]tok, error) {
	var out []tok
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

var multiCharOps = []string{"==", "!=", "<=", ">=", "&&", "||"}

func (l *exprLexer) next() (tok, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return tok{kind: tokEOF}, nil
	}
	c := l.src[l.pos]

	for _, op := range multiCharOps {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return tok{kind: tokOp, text: op}, nil
		}
	}

	switch c {
	case '(':
		l.pos++
		return tok{kind: tokLParen, text: "("}, nil
	case ')':
		l.pos++
		return tok{kind: tokRParen, text: ")"}, nil
	case '[':
		l.pos++
		return tok{kind: tokLBracket, text: "["}, nil
	case ']':
		l.pos++
		return tok{kind: tokRBracket, text: "]"}, nil
	case ',':
		l.pos++
		return tok{kind: tokComma, text: ","}, nil
	case '.':
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			return l.number()
		}
		l.pos++
		return tok{kind: tokDot, text: "."}, nil
	case '+', '-', '*', '/', '%', '<', '>', '!':
		l.pos++
		return tok{kind: tokOp, text: string(c)}, nil
	case '\'', '"':
		return l.stringLiteral(c)
	}

	if isDigit(c) {
		return l.number()
	}
	if isIdentStart(c) {
		return l.identifier(), nil
	}

	return tok{}, fmt.Errorf("unexpected character %q in expression", c)
}

func (l *exprLexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *exprLexer) identifier() tok {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return tok{kind: tokIdent, text: l.src[start:l.pos]}
}

func (l *exprLexer) number() (tok, error) {
	start := l.pos
	isFloat := false
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	if isFloat {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return tok{}, fmt.Errorf("invalid number literal %q", text)
		}
		return tok{kind: tokFloat, text: text}, nil
	}
	return tok{kind: tokInt, text: text}, nil
}

func (l *exprLexer) stringLiteral(quote byte) (tok, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			return tok{kind: tokString, text: b.String()}, nil
		}
		b.WriteByte(c)
		l.pos++
	}
	return tok{}, fmt.Errorf("unterminated string literal starting at %d", start)
}
