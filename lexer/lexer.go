// Package lexer performs lexical analysis, lazily classifying a byte stream
// into the fixed token taxonomy described by Kind.
package lexer

import (
	"github.com/ava12/vema"
	"github.com/ava12/vema/source"
)

// Error codes used by lexer:
const (
	// UnterminatedStringError indicates a string literal with no closing quote before end of input.
	UnterminatedStringError = vema.LexicalErrors + iota

	// UnknownInputError indicates a byte that does not belong to any recognized token class
	// and ReturnUnknown is false.
	UnknownInputError
)

// Lexer classifies the content of a single source.Source into tokens.
// SkipWhitespace and ReturnUnknown are fixed at construction; SkipNewline is mutable
// and shared between the Lexer and any live TokenIter built from it (see TokenIter.StartNewline).
// A Lexer is not safe for concurrent use by multiple goroutines against the same source.
type Lexer struct {
	src *source.Source

	SkipWhitespace bool
	SkipNewline    bool
	ReturnUnknown  bool
}

// New creates a Lexer over src with skip_ws=true, skip_nl=true, return_unknown=false.
func New (src *source.Source) *Lexer {
	return &Lexer{src: src, SkipWhitespace: true, SkipNewline: true, ReturnUnknown: false}
}

// NewWithOptions creates a Lexer over src with explicit skip_ws/skip_nl/return_unknown.
func NewWithOptions (src *source.Source, skipWS, skipNL, returnUnknown bool) *Lexer {
	return &Lexer{src: src, SkipWhitespace: skipWS, SkipNewline: skipNL, ReturnUnknown: returnUnknown}
}

func isBracket (c byte) bool {
	switch c {
	case '{', '}', '[', ']', '(', ')':
		return true
	default:
		return false
	}
}

func bracketKind (c byte) Kind {
	switch c {
	case '{':
		return OPEN_BRACE
	case '}':
		return CLOSE_BRACE
	case '[':
		return OPEN_BRACKET
	case ']':
		return CLOSE_BRACKET
	case '(':
		return OPEN_PAREN
	default:
		return CLOSE_PAREN
	}
}

func isSpaceByte (c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigitByte (c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetterByte (c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte (c byte) bool {
	return isLetterByte(c) || isDigitByte(c) || c == '_'
}

// isNumberByte matches the tokenizer's intentionally over-permissive numeric-run alphabet
// (hex digits, 'x', '.'); numeric validation happens later in ast.ToNumber, not here.
func isNumberByte (c byte) bool {
	return isDigitByte(c) || c == '.' || c == 'x' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isPunctByte (c byte) bool {
	if c < 0x21 || c > 0x7e {
		return false
	}
	if isWordByte(c) || c == '"' || isBracket(c) {
		return false
	}
	return true
}

func errUnterminatedString (src *source.Source, pos int) *vema.Error {
	return vema.FormatErrorPos(source.PosAt(src, pos), UnterminatedStringError, "string literal not closed")
}

func errUnknownInput (src *source.Source, pos int, c byte) *vema.Error {
	return vema.FormatErrorPos(source.PosAt(src, pos), UnknownInputError, "unknown input type %q", string(c))
}

// scan classifies one token starting at pos, or reports isEnd=true at end of content.
// It is a pure function of (content, pos, current lexer flags): re-scanning the same pos
// under the same flags always yields the same result, which is what makes positions restartable.
func (l *Lexer) scan (pos int) (tok Token, isEnd bool, err error) {
	content := l.src.Content()

	for {
		if pos >= len(content) {
			return Token{}, true, nil
		}

		c := content[pos]

		switch {
		case isBracket(c):
			return newToken(bracketKind(c), pos, pos+1, l.src), false, nil

		case isSpaceByte(c):
			start := pos
			p := pos + 1
			hasNewline := c == '\n'
			for p < len(content) && isSpaceByte(content[p]) {
				if content[p] == '\n' {
					hasNewline = true
				}
				p++
			}
			if l.SkipWhitespace && (!hasNewline || l.SkipNewline) {
				pos = p
				continue
			}
			return newToken(WHITESPACE, start, p, l.src), false, nil

		case c == '/' && pos+1 < len(content) && content[pos+1] == '/':
			start := pos
			p := pos + 2
			for p < len(content) && content[p] != '\n' {
				p++
			}
			return newToken(COMMENT, start, p, l.src), false, nil

		case c == '"':
			start := pos
			p := pos + 1
			openSlash := false
			closed := false
			for p < len(content) {
				ch := content[p]
				if ch == '"' && !openSlash {
					p++
					closed = true
					break
				}
				openSlash = ch == '\\' && !openSlash
				p++
			}
			if !closed {
				return Token{}, false, errUnterminatedString(l.src, start)
			}
			return newToken(STRING_LITERAL, start, p, l.src), false, nil

		case isLetterByte(c) || c == '_':
			start := pos
			p := pos + 1
			for p < len(content) && isWordByte(content[p]) {
				p++
			}
			return newToken(IDENTIFIER, start, p, l.src), false, nil

		case isDigitByte(c):
			start := pos
			p := pos + 1
			for p < len(content) && isNumberByte(content[p]) {
				p++
			}
			return newToken(NUMBER_LITERAL, start, p, l.src), false, nil

		case isPunctByte(c):
			start := pos
			p := pos + 1
			for p < len(content) && isPunctByte(content[p]) {
				p++
			}
			return newToken(OPERATOR, start, p, l.src), false, nil

		default:
			if l.ReturnUnknown {
				return newToken(UNKNOWN, pos, pos+1, l.src), false, nil
			}
			return Token{}, false, errUnknownInput(l.src, pos, c)
		}
	}
}

// Begin returns a TokenIter positioned at the first token of the source.
func (l *Lexer) Begin () (TokenIter, error) {
	return TokenIter{lex: l}.Next()
}

// End returns the end-of-stream sentinel TokenIter for this Lexer.
func (l *Lexer) End () TokenIter {
	return TokenIter{lex: l, pos: l.src.Len(), end: l.src.Len(), isEnd: true}
}

// TokenIter is a forward iterator over a Lexer's token stream.
// Dereferencing (Text) the end iterator is a programming error and panics.
type TokenIter struct {
	lex   *Lexer
	pos   int
	end   int
	tok   Token
	isEnd bool
	index int
}

// Next returns the TokenIter for the token immediately following this one.
func (it TokenIter) Next () (TokenIter, error) {
	if it.isEnd {
		return it, nil
	}

	from := it.end
	tok, isEnd, err := it.lex.scan(from)
	if err != nil {
		return TokenIter{}, err
	}
	if isEnd {
		return TokenIter{lex: it.lex, pos: from, end: from, isEnd: true, index: it.index + 1}, nil
	}

	return TokenIter{lex: it.lex, pos: tok.Begin(), end: tok.End(), tok: tok, index: it.index + 1}, nil
}

func (it TokenIter) Kind () Kind {
	if it.isEnd {
		return INVALID
	}
	return it.tok.Kind()
}

func (it TokenIter) Token () Token {
	return it.tok
}

func (it TokenIter) Begin () int {
	return it.pos
}

func (it TokenIter) End () int {
	return it.end
}

func (it TokenIter) IsEnd () bool {
	return it.isEnd
}

// Text dereferences the iterator, returning the current token's raw text.
// Dereferencing the end iterator is a programming error.
func (it TokenIter) Text () string {
	if it.isEnd {
		panic("lexer: dereferencing end iterator")
	}
	return it.tok.Text()
}

func (it TokenIter) SourceName () string {
	return it.tok.SourceName()
}

func (it TokenIter) Line () int {
	if it.isEnd && it.lex != nil {
		line, _ := it.lex.src.LineCol(it.pos)
		return line
	}
	return it.tok.Line()
}

func (it TokenIter) Col () int {
	if it.isEnd && it.lex != nil {
		_, col := it.lex.src.LineCol(it.pos)
		return col
	}
	return it.tok.Col()
}

// StartNewline flips the underlying Lexer's SkipNewline off: from the next token produced
// onward, whitespace runs containing a newline are surfaced as WHITESPACE tokens. In-flight
// tokens (this one) are unaffected.
func (it TokenIter) StartNewline () {
	it.lex.SkipNewline = false
}

// StopNewline flips the underlying Lexer's SkipNewline back on.
func (it TokenIter) StopNewline () {
	it.lex.SkipNewline = true
}

// Sub returns the number of tokens between other and it (it.index - other.index),
// both iterators must have been produced by the same Lexer.
func (it TokenIter) Sub (other TokenIter) int {
	return it.index - other.index
}

// Less reports whether it's character position precedes other's.
func (it TokenIter) Less (other TokenIter) bool {
	return it.pos < other.pos
}

func (it TokenIter) Equal (other TokenIter) bool {
	if it.isEnd || other.isEnd {
		return it.isEnd == other.isEnd
	}
	return it.pos == other.pos
}
