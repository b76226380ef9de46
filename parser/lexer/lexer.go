// Package lexer splits tlisp source text into tokens.
//
// The lexer has two states.  Normally whitespace separates words and the
// characters '(' and ')' are tokens of their own.  A single quote (') toggles
// string mode, in which every character is taken literally until the next
// single quote.  There are no escape sequences and an unterminated string
// extends to the end of input.  Words which parse as base-10 signed 64-bit
// integers are INT tokens, all other words are SYMBOL tokens.
package lexer

import (
	"io"
	"strconv"
	"unicode"

	"github.com/luthersystems/tlisp/parser/token"
)

const quoteRune = '\''

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// readErr is the terminal error from the scanner.  Once set every call
	// to NextToken returns a token reflecting it.
	readErr error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// Tokenize scans all of r and returns its tokens, not including the final EOF
// token.  An error is returned if r contains invalid utf-8.
func Tokenize(name string, r io.Reader) ([]*token.Token, error) {
	lex := New(token.NewScanner(name, r))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ERROR:
			return toks, lex.readErr
		}
		toks = append(toks, tok)
	}
}

// NextToken scans and returns the next token.  After input is exhausted
// NextToken returns an EOF token on every call.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	lex.skipWhitespace()
	if lex.readChar() != nil {
		return lex.emitError(lex.readErr)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case quoteRune:
		return lex.readString()
	default:
		return lex.readWord()
	}
}

func (lex *Lexer) readString() *token.Token {
	loc := lex.scanner.LocStart()
	lex.scanner.Ignore() // drop the opening quote
	for {
		c, ok := lex.scanner.Peek()
		if !ok || c == quoteRune {
			break
		}
		lex.readChar()
	}
	tok := &token.Token{
		Type:   token.STRING,
		Text:   lex.scanner.Text(),
		Source: loc,
	}
	if !lex.scanner.EOF() {
		// Either the closing quote or an invalid utf-8 sequence.  The error
		// is reported by the following call to NextToken.
		if lex.readChar() == nil {
			lex.scanner.Ignore()
		} else {
			lex.readErr = nil
		}
	}
	return tok
}

func (lex *Lexer) readWord() *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || isDelimiter(c) {
			break
		}
		lex.readChar()
	}
	_, err := strconv.ParseInt(lex.scanner.Text(), 10, 64)
	if err == nil {
		return lex.scanner.EmitToken(token.INT)
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		return lex.emit(token.EOF, "")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) skipWhitespace() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			break
		}
		lex.readChar()
	}
	lex.scanner.Ignore()
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || c == quoteRune || unicode.IsSpace(c)
}
