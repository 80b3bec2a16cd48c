package parser

import (
	"fmt"
	"strings"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int8

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokSemicolon
	tokString
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokEquals:
		return "'='"
	case tokSemicolon:
		return "';'"
	case tokString:
		return "string"
	default:
		return "unknown token"
	}
}

// token is one lexical unit of an MCL document. For tokString the text holds
// the decoded content (quotes stripped, escapes resolved).
type token struct {
	kind tokenKind
	text string
	loc  value.Location
}

// lexer produces tokens from an input string. It tracks line and column for
// error reporting.
type lexer struct {
	input string
	file  string
	off   int
	line  int
	col   int
}

func newLexer(input, file string) *lexer {
	return &lexer{input: input, file: file, line: 1, col: 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isSpecial reports whether c is one of the punctuation characters that
// terminate a bare string.
func isSpecial(c byte) bool {
	return strings.IndexByte("(){},=;", c) >= 0
}

func (l *lexer) here() value.Location {
	return value.Location{File: l.file, Line: l.line, Column: l.col}
}

// bump consumes one byte, updating line/column bookkeeping.
func (l *lexer) bump() {
	if l.input[l.off] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off++
}

func (l *lexer) skipSpace() {
	for l.off < len(l.input) && isSpace(l.input[l.off]) {
		l.bump()
	}
}

// next returns the next token, or a parse error for malformed input
// (currently only an unterminated quoted string).
func (l *lexer) next() (token, *mclErrors.Error) {
	l.skipSpace()

	if l.off >= len(l.input) {
		return token{kind: tokEOF, loc: l.here()}, nil
	}

	loc := l.here()
	c := l.input[l.off]

	switch c {
	case '{':
		l.bump()
		return token{kind: tokLBrace, loc: loc}, nil
	case '}':
		l.bump()
		return token{kind: tokRBrace, loc: loc}, nil
	case '(':
		l.bump()
		return token{kind: tokLParen, loc: loc}, nil
	case ')':
		l.bump()
		return token{kind: tokRParen, loc: loc}, nil
	case ',':
		l.bump()
		return token{kind: tokComma, loc: loc}, nil
	case '=':
		l.bump()
		return token{kind: tokEquals, loc: loc}, nil
	case ';':
		l.bump()
		return token{kind: tokSemicolon, loc: loc}, nil
	case '"':
		return l.quotedString(loc)
	default:
		return l.bareString(loc), nil
	}
}

// bareString consumes a maximal run of non-whitespace, non-special,
// non-quote characters.
func (l *lexer) bareString(loc value.Location) token {
	start := l.off
	for l.off < len(l.input) {
		c := l.input[l.off]
		if isSpace(c) || isSpecial(c) || c == '"' {
			break
		}
		l.bump()
	}
	return token{kind: tokString, text: l.input[start:l.off], loc: loc}
}

// quotedString consumes a double-quoted string, decoding backslash escapes
// by dropping the escaping backslash.
func (l *lexer) quotedString(loc value.Location) (token, *mclErrors.Error) {
	l.bump() // opening quote

	var sb strings.Builder
	for l.off < len(l.input) {
		c := l.input[l.off]
		switch c {
		case '"':
			l.bump()
			return token{kind: tokString, text: sb.String(), loc: loc}, nil
		case '\\':
			l.bump()
			if l.off >= len(l.input) {
				return token{}, &mclErrors.Error{
					Type:       mclErrors.ErrorTypeParse,
					Message:    "unterminated string literal",
					Location:   loc,
					Suggestion: "add a closing '\"'",
				}
			}
			sb.WriteByte(l.input[l.off])
			l.bump()
		default:
			sb.WriteByte(c)
			l.bump()
		}
	}

	return token{}, &mclErrors.Error{
		Type:       mclErrors.ErrorTypeParse,
		Message:    fmt.Sprintf("unterminated string literal starting at %s", loc),
		Location:   loc,
		Suggestion: "add a closing '\"'",
	}
}
