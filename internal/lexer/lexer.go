// Package lexer turns raw RBQL source into a token stream, per two passes:
// a string-literal pass that keeps literal bodies verbatim, and a term pass
// that splits everything else on boundary characters. Comments and
// trailing whitespace are stripped line by line before either pass runs.
package lexer

import (
	"strings"

	"github.com/rbql-go/rbql/internal/rbqlerr"
	"github.com/rbql-go/rbql/internal/token"
)

// Lex converts query source text into a normalized token stream: comments
// stripped, string literals preserved verbatim, whitespace runs collapsed.
func Lex(src string) ([]token.Token, error) {
	lines := strings.Split(src, "\n")

	stripped := make([]string, len(lines))
	for i, line := range lines {
		clean, err := stripComment(line)
		if err != nil {
			return nil, rbqlerr.NewParsingError("%s at line: %d", err.Error(), i+1)
		}
		stripped[i] = clean
	}

	var tokens []token.Token
	for _, line := range stripped {
		tokens = append(tokens, scanStringLiterals(line)...)
		tokens = append(tokens, token.New(token.Whitespace, " "))
	}

	tokens = expandTerms(tokens)
	tokens = collapseWhitespace(tokens)
	return tokens, nil
}

// stripComment removes trailing whitespace, replaces tabs with spaces and
// truncates the line at the first '#' that falls outside a string literal.
// A quote character left open at end of line is a parsing error: RBQL does
// not support multi-line or triple-quoted string literals.
func stripComment(line string) (string, error) {
	line = strings.ReplaceAll(line, "\t", " ")

	if strings.Contains(line, "'''") || strings.Contains(line, `"""`) {
		return "", errTripleQuoted
	}

	var quote byte
	inLiteral := false
	cut := len(line)

	for i := 0; i < len(line); i++ {
		c := line[i]
		if inLiteral {
			if c == quote && !quoteEscaped(line, i) {
				inLiteral = false
			}
			continue
		}
		if c == '\'' || c == '"' {
			if !quoteEscaped(line, i) {
				inLiteral = true
				quote = c
			}
			continue
		}
		if c == '#' {
			cut = i
			break
		}
	}

	if inLiteral {
		return "", errMultilineLiteral
	}

	return strings.TrimRight(line[:cut], " "), nil
}

type lexError string

func (e lexError) Error() string { return string(e) }

const errMultilineLiteral = lexError("multiline string literal is not supported")
const errTripleQuoted = lexError("triple-quoted string literals are not supported")

// quoteEscaped reports whether the quote at line[i] is escaped: immediately
// preceded by exactly one backslash (a backslash that is itself not
// preceded by another backslash).
func quoteEscaped(line string, i int) bool {
	if i == 0 || line[i-1] != '\\' {
		return false
	}
	if i >= 2 && line[i-2] == '\\' {
		return false
	}
	return true
}

// scanStringLiterals is pass 1: emits StringLiteral tokens (quotes and body
// included) and Raw tokens for everything in between, for a single
// already-comment-stripped line.
func scanStringLiterals(line string) []token.Token {
	var out []token.Token
	var raw strings.Builder

	flushRaw := func() {
		if raw.Len() > 0 {
			out = append(out, token.New(token.Raw, raw.String()))
			raw.Reset()
		}
	}

	var quote byte
	inLiteral := false
	litStart := 0

	for i := 0; i < len(line); i++ {
		c := line[i]
		if inLiteral {
			if c == quote && !quoteEscaped(line, i) {
				inLiteral = false
				out = append(out, token.New(token.StringLiteral, line[litStart:i+1]))
			}
			continue
		}
		if c == '\'' || c == '"' {
			if !quoteEscaped(line, i) {
				flushRaw()
				inLiteral = true
				quote = c
				litStart = i
				continue
			}
		}
		raw.WriteByte(c)
	}
	if inLiteral {
		// stripComment already rejected this; defensive only.
		out = append(out, token.New(token.StringLiteral, line[litStart:]))
	} else {
		flushRaw()
	}
	return out
}

func isAlnumOrUnderscore(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// expandTerms is pass 2: expands every Raw token into AlphanumRaw,
// Whitespace and SymbolRaw tokens, splitting on spaces and on boundary
// characters. StringLiteral and Whitespace tokens pass through unchanged.
func expandTerms(tokens []token.Token) []token.Token {
	var out []token.Token
	for _, t := range tokens {
		if t.Kind != token.Raw {
			out = append(out, t)
			continue
		}
		out = append(out, splitRaw(t.Text)...)
	}
	return out
}

func splitRaw(text string) []token.Token {
	var out []token.Token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ':
			out = append(out, token.New(token.Whitespace, " "))
			i++
		case isAlnumOrUnderscore(c):
			j := i + 1
			for j < len(text) && isAlnumOrUnderscore(text[j]) {
				j++
			}
			out = append(out, token.New(token.AlphanumRaw, text[i:j]))
			i = j
		default:
			out = append(out, token.New(token.SymbolRaw, text[i:i+1]))
			i++
		}
	}
	return out
}

// collapseWhitespace merges consecutive Whitespace tokens into one and
// trims leading/trailing whitespace from the stream.
func collapseWhitespace(tokens []token.Token) []token.Token {
	var out []token.Token
	for _, t := range tokens {
		if t.Kind == token.Whitespace && len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
			continue
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[0].Kind == token.Whitespace {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
		out = out[:len(out)-1]
	}
	return out
}
