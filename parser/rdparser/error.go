package rdparser

import (
	"fmt"

	"github.com/luthersystems/tlisp/parser/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint

// Possible ErrorKind values
const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	ScanError
)

var errorKindConditions = []string{
	UnexpectedToken: "unexpected-token",
	UnexpectedEOF:   "unexpected-eof",
	ScanError:       "scan-error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindConditions) {
		return "parse-error"
	}
	return errorKindConditions[k]
}

// ParseError is returned when source text does not form a valid expression.
type ParseError struct {
	Kind   ErrorKind
	Source *token.Location
	// Expected is the token type the parser required.  It is token.INVALID
	// when any expression would have been accepted.
	Expected token.Type
	Got      *token.Token
}

// Condition returns a symbolic name for the class of error.
func (err *ParseError) Condition() string {
	return err.Kind.String()
}

func (err *ParseError) Error() string {
	switch err.Kind {
	case UnexpectedEOF:
		if err.Expected == token.INVALID {
			return fmt.Sprintf("%v: expected any input but got EOF", err.Source)
		}
		return fmt.Sprintf("%v: expected '%v' but got EOF", err.Source, err.Expected)
	case ScanError:
		return fmt.Sprintf("%v: %s", err.Source, err.Got.Text)
	default:
		if err.Expected == token.INVALID {
			return fmt.Sprintf("%v: unexpected '%v'", err.Source, err.Got)
		}
		return fmt.Sprintf("%v: expected '%v' but got '%v'", err.Source, err.Expected, err.Got)
	}
}
