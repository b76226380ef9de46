package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The stream is read in full when the Scanner is created, source text for a
// single line or file is expected to fit in memory.
type Scanner struct {
	file string
	buf  []byte

	start     int // start of the current token
	startLine int // line number at start
	startCol  int // column number at start

	next int // index of the rune following c
	line int // line number of the rune at next
	col  int // column number of the rune at next
	c    Rune

	readErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	return &Scanner{
		file:      file,
		buf:       buf,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
		readErr:   err,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// EOF returns true when every byte of input has been scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.buf)
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.readErr != nil || s.EOF() {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	if (Rune{c, n}).IsRuneError() {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  ScanRune returns io.EOF when the input is exhausted and an
// *InvalidUTF8Error when the input is not valid utf-8.
func (s *Scanner) ScanRune() error {
	if s.readErr != nil {
		return s.readErr
	}
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	r := Rune{c, n}
	if r.IsRuneError() {
		return &InvalidUTF8Error{
			File: s.file,
			Pos:  s.next,
			Line: s.line,
			Byte: s.buf[s.next],
		}
	}
	s.c = r
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position, the byte
// following the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}

// Rune contains a rune that read by Scanner during peeking operations.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}

// InvalidUTF8Error is returned by Scanner.ScanRune when the source contains
// bytes that are not valid utf-8.
type InvalidUTF8Error struct {
	File string
	Pos  int
	Line int
	Byte byte
}

func (err *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("%s:%d: invalid utf-8 sequence starting with byte %q at offset %d",
		err.File, err.Line, err.Byte, err.Pos)
}
