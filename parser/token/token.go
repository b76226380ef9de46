package token

import "fmt"

// Token is a lexical token scanned from source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case STRING:
		return "'" + tok.Text + "'"
	case EOF:
		return "EOF"
	default:
		return tok.Text
	}
}

type Type uint

// Type constants used for the tlisp lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	INT
	STRING

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		INT:     "int",
		STRING:  "string",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location identifies a position in source text.  Pos is a byte offset from
// the beginning of the text.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number in runes (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "?"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
