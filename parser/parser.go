// Package parser provides the tlisp reader.
//
//	expr   := '(' <expr>* ')' | <int> | <string> | <symbol>
//	int    := [+-]?[0-9]+            (fits in a signed 64-bit integer)
//	string := "'" <any text except '> "'"?   (unterminated at end of input)
//	symbol := <text without whitespace, parens, or '>
//
// The symbols true, false, and nil are read as the corresponding constants.
package parser

import (
	"io"
	"strings"

	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser/rdparser"
	"github.com/luthersystems/tlisp/parser/token"
)

// DefaultSourceName is the name attached to source locations of text parsed
// with Parse.
const DefaultSourceName = "input"

// NewReader returns a lisp.Reader that can be used to configure a root
// environment.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// Parse parses exactly one top-level expression from text.  Any tokens
// following the first complete expression are ignored.
func Parse(text string) (*lisp.LVal, error) {
	p := rdparser.New(token.NewScanner(DefaultSourceName, strings.NewReader(text)))
	return p.ParseExpression()
}

// ParseProgram parses all top-level expressions read from r.  The given name
// is used in the source location of expressions and errors.
func ParseProgram(name string, r io.Reader) ([]*lisp.LVal, error) {
	p := rdparser.New(token.NewScanner(name, r))
	return p.ParseProgram()
}
