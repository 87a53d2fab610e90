// Package token defines the tagged token type produced by the RBQL lexer.
package token

// Kind tags the variant of a Token. Kept as a closed sum type (not an
// inheritance hierarchy) so every consumer switches exhaustively.
type Kind int

const (
	Raw Kind = iota + 1
	StringLiteral
	Whitespace
	AlphanumRaw
	SymbolRaw
)

func (k Kind) String() string {
	return kindToDescription[k]
}

func (k Kind) GoString() string {
	return kindToDescription[k]
}

func init() {
	for k := Raw; k <= SymbolRaw; k++ {
		if kindToDescription[k] == "" {
			panic("token: kindToDescription not updated for new Kind")
		}
	}
}

var kindToDescription = map[Kind]string{
	Raw:           "Raw",
	StringLiteral: "StringLiteral",
	Whitespace:    "Whitespace",
	AlphanumRaw:   "AlphanumRaw",
	SymbolRaw:     "SymbolRaw",
}

// Token carries its literal textual content. String literals retain their
// surrounding quotes and are never subject to column rewriting.
type Token struct {
	Kind Kind
	Text string
}

func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

func (t Token) IsStringLiteral() bool {
	return t.Kind == StringLiteral
}

// MatchableText reports whether a token participates in keyword or
// column-reference matching: string literals never do.
func (t Token) MatchableText() (string, bool) {
	if t.Kind == StringLiteral {
		return "", false
	}
	return t.Text, true
}

// Join concatenates the contents of a run of tokens, reproducing the
// underlying source text for that run.
func Join(tokens []Token) string {
	var total int
	for _, t := range tokens {
		total += len(t.Text)
	}
	buf := make([]byte, 0, total)
	for _, t := range tokens {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}
