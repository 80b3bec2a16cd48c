// Package parser provides lexing and parsing of MCL documents into value
// trees.
//
// MCL is a property-list style configuration language:
//
//	{
//	    listen = 127.0.0.1:8080;
//	    backends = ( alpha, beta );
//	    colors = {
//	        background = argb32:ff202020;
//	    };
//	}
//
// A document is exactly one object, where `object := string | dict | array`.
// Bare strings are maximal runs of non-whitespace, non-special characters;
// quoted strings decode backslash escapes by dropping the backslash.
//
// # Basic Usage
//
// Parse a document file:
//
//	p := parser.NewParser()
//	doc, err := p.Parse("config.mcl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse from memory:
//
//	doc, err := p.ParseBytes(data, "memory://config")
//
// # Configuration
//
// Configure parser limits:
//
//	p := parser.NewParser().
//	    WithMaxInputSize(1 << 20). // 1MB limit
//	    WithMaxDepth(16)           // Max nesting depth
//
// # Error Handling
//
// The parser returns *errors.Error values with a source location and, where
// possible, a suggestion. Any grammar violation or duplicate dict key aborts
// the parse; no partial tree is ever returned.
package parser
