package parser

import (
	"fmt"
	"os"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// Parser parses MCL documents into value trees.
// A grammar violation or a semantic failure (such as a duplicate dict key)
// aborts the whole parse; no partial tree is ever returned.
type Parser struct {
	maxInputSize int64 // Maximum input size in bytes (default: 10MB)
	maxDepth     int   // Maximum container nesting depth (default: 64)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxInputSize: 10 * 1024 * 1024, // 10MB
		maxDepth:     64,
	}
}

// WithMaxInputSize sets the maximum input size limit.
func (p *Parser) WithMaxInputSize(size int64) *Parser {
	p.maxInputSize = size
	return p
}

// WithMaxDepth sets the maximum container nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse parses the document at the given path and returns the value tree.
func (p *Parser) Parse(path string) (*value.Value, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to access file: %v", err),
			Location: value.Location{File: path},
		}
	}

	if fileInfo.Size() > p.maxInputSize {
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("file size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxInputSize),
			Location: value.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to read file: %v", err),
			Location: value.Location{File: path},
		}
	}

	return p.ParseBytes(data, path)
}

// ParseBytes parses an MCL document from a byte slice. The sourcePath is
// used only for error locations.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*value.Value, error) {
	if int64(len(data)) > p.maxInputSize {
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("input size %d exceeds maximum %d bytes", len(data), p.maxInputSize),
			Location: value.Location{File: sourcePath},
		}
	}
	return p.parse(string(data), sourcePath)
}

// ParseString parses an MCL document from a string.
func (p *Parser) ParseString(text, sourcePath string) (*value.Value, error) {
	if int64(len(text)) > p.maxInputSize {
		return nil, &mclErrors.Error{
			Type:     mclErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("input size %d exceeds maximum %d bytes", len(text), p.maxInputSize),
			Location: value.Location{File: sourcePath},
		}
	}
	return p.parse(text, sourcePath)
}

// parse is the single scan-and-build routine all entry points converge on.
func (p *Parser) parse(input, sourcePath string) (*value.Value, error) {
	s := &scanner{
		lex:      newLexer(input, sourcePath),
		maxDepth: p.maxDepth,
	}
	if err := s.advance(); err != nil {
		return nil, err
	}

	obj, err := s.parseObject()
	if err != nil {
		return nil, err
	}

	if s.tok.kind != tokEOF {
		return nil, &mclErrors.Error{
			Type:       mclErrors.ErrorTypeParse,
			Message:    fmt.Sprintf("unexpected %s after document", s.tok.kind),
			Location:   s.tok.loc,
			Suggestion: "a document holds exactly one value",
		}
	}

	return obj, nil
}

// scanner holds the state of one parse call: the lexer, one token of
// lookahead, and the current nesting depth.
type scanner struct {
	lex      *lexer
	tok      token
	depth    int
	maxDepth int
}

func (s *scanner) advance() *mclErrors.Error {
	tok, err := s.lex.next()
	if err != nil {
		return err
	}
	s.tok = tok
	return nil
}

func (s *scanner) errorf(suggestion, format string, args ...any) *mclErrors.Error {
	return &mclErrors.Error{
		Type:       mclErrors.ErrorTypeParse,
		Message:    fmt.Sprintf(format, args...),
		Location:   s.tok.loc,
		Suggestion: suggestion,
	}
}

// parseObject parses `object := string | dict | array`.
func (s *scanner) parseObject() (*value.Value, *mclErrors.Error) {
	switch s.tok.kind {
	case tokString:
		v := value.NewString(s.tok.text)
		v.Loc = s.tok.loc
		if err := s.advance(); err != nil {
			return nil, err
		}
		return v, nil
	case tokLBrace:
		return s.parseDict()
	case tokLParen:
		return s.parseArray()
	case tokEOF:
		return nil, s.errorf("", "unexpected end of input, expected a value")
	default:
		return nil, s.errorf("", "unexpected %s, expected a value", s.tok.kind)
	}
}

// parseDict parses `dict := '{' (key '=' object (';' key '=' object)* ';'?)? '}'`.
func (s *scanner) parseDict() (*value.Value, *mclErrors.Error) {
	if s.depth++; s.depth > s.maxDepth {
		return nil, s.errorf("", "nesting depth exceeds maximum of %d", s.maxDepth)
	}
	defer func() { s.depth-- }()

	d := value.NewDict()
	d.Loc = s.tok.loc
	if err := s.advance(); err != nil { // consume '{'
		return nil, err
	}

	for s.tok.kind != tokRBrace {
		if s.tok.kind != tokString {
			return nil, s.errorf("dict entries have the form 'key = value;'",
				"unexpected %s, expected a dict key", s.tok.kind)
		}
		key := s.tok.text
		keyLoc := s.tok.loc
		if err := s.advance(); err != nil {
			return nil, err
		}

		if s.tok.kind != tokEquals {
			return nil, s.errorf("dict entries have the form 'key = value;'",
				"unexpected %s after dict key %q, expected '='", s.tok.kind, key)
		}
		if err := s.advance(); err != nil {
			return nil, err
		}

		obj, err := s.parseObject()
		if err != nil {
			return nil, err
		}

		if !d.DictAdd(key, obj) {
			return nil, &mclErrors.Error{
				Type:       mclErrors.ErrorTypeParse,
				Message:    fmt.Sprintf("duplicate dict key %q", key),
				Location:   keyLoc,
				Suggestion: "remove or rename the duplicate entry",
			}
		}

		// Entries are ';' separated; the trailing ';' is optional.
		if s.tok.kind == tokSemicolon {
			if err := s.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if s.tok.kind != tokRBrace {
			return nil, s.errorf("separate dict entries with ';'",
				"unexpected %s after dict entry %q, expected ';' or '}'", s.tok.kind, key)
		}
	}

	if err := s.advance(); err != nil { // consume '}'
		return nil, err
	}
	return d, nil
}

// parseArray parses `array := '(' (object (',' object)* ','?)? ')'`.
func (s *scanner) parseArray() (*value.Value, *mclErrors.Error) {
	if s.depth++; s.depth > s.maxDepth {
		return nil, s.errorf("", "nesting depth exceeds maximum of %d", s.maxDepth)
	}
	defer func() { s.depth-- }()

	a := value.NewArray()
	a.Loc = s.tok.loc
	if err := s.advance(); err != nil { // consume '('
		return nil, err
	}

	for s.tok.kind != tokRParen {
		obj, err := s.parseObject()
		if err != nil {
			return nil, err
		}
		a.ArrayAppend(obj)

		// Elements are ',' separated; the trailing ',' is optional.
		if s.tok.kind == tokComma {
			if err := s.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if s.tok.kind != tokRParen {
			return nil, s.errorf("separate array elements with ','",
				"unexpected %s in array, expected ',' or ')'", s.tok.kind)
		}
	}

	if err := s.advance(); err != nil { // consume ')'
		return nil, err
	}
	return a, nil
}
