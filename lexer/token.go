package lexer

import (
	"github.com/ava12/vema/source"
)

// Kind is the closed set of token kinds the lexer can produce.
type Kind int

const (
	IDENTIFIER Kind = iota
	OPERATOR
	STRING_LITERAL
	WHITESPACE
	NUMBER_LITERAL
	OPEN_BRACE
	CLOSE_BRACE
	OPEN_BRACKET
	CLOSE_BRACKET
	OPEN_PAREN
	CLOSE_PAREN
	COMMENT
	UNKNOWN

	// INVALID is reserved for the end-of-stream sentinel iterator; the lexer never returns it as a real token.
	INVALID
)

var kindNames = [...]string{
	"IDENTIFIER", "OPERATOR", "STRING_LITERAL", "WHITESPACE", "NUMBER_LITERAL",
	"OPEN_BRACE", "CLOSE_BRACE", "OPEN_BRACKET", "CLOSE_BRACKET", "OPEN_PAREN", "CLOSE_PAREN",
	"COMMENT", "UNKNOWN", "INVALID",
}

func (k Kind) String () string {
	if k < 0 || int(k) >= len(kindNames) {
		return "INVALID"
	}
	return kindNames[k]
}

// Token is an immutable triple (kind, begin, end) over the underlying character stream.
// Text is derived on demand from the source content; the lexer keeps no copy of the characters.
type Token struct {
	kind  Kind
	begin, end int
	src   *source.Source
}

func newToken (kind Kind, begin, end int, src *source.Source) Token {
	return Token{kind, begin, end, src}
}

func (t Token) Kind () Kind {
	return t.kind
}

func (t Token) Begin () int {
	return t.begin
}

func (t Token) End () int {
	return t.end
}

// Text returns the token's raw source text, re-derived from [begin, end) on every call.
func (t Token) Text () string {
	if t.src == nil || t.end <= t.begin {
		return ""
	}
	return string(t.src.Content()[t.begin : t.end])
}

func (t Token) SourceName () string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

func (t Token) Line () int {
	if t.src == nil {
		return 0
	}
	line, _ := t.src.LineCol(t.begin)
	return line
}

func (t Token) Col () int {
	if t.src == nil {
		return 0
	}
	_, col := t.src.LineCol(t.begin)
	return col
}
