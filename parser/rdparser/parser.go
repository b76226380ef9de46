package rdparser

import (
	"io"
	"strconv"

	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser/lexer"
	"github.com/luthersystems/tlisp/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// ReadForm implements lisp.Reader.
func (*reader) ReadForm(name string, r io.Reader) (*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseExpression()
}

// Parser is a recursive descent lisp parser which uses one token of
// lookahead.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	p.initTokens()
	return p
}

func (p *Parser) initTokens() {
	// Setup the peek token so the parser is in the proper state when the first
	// parse function is called.
	p.ReadToken()
}

// ParseProgram parses every top-level expression remaining in the token
// stream.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for p.PeekType() != token.EOF {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Tokens following the
// expression are left unread.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	if p.PeekType() == token.PAREN_L {
		return p.ParseList()
	}
	return p.ParseAtom()
}

// ParseList parses a parenthesized list of expressions.
func (p *Parser) ParseList() (*lisp.LVal, error) {
	if p.PeekType() != token.PAREN_L {
		p.ReadToken()
		return nil, p.unexpected(token.PAREN_L)
	}
	open := p.ReadToken()
	var cells []*lisp.LVal
	for {
		switch p.PeekType() {
		case token.EOF:
			p.ReadToken()
			return nil, p.unexpected(token.PAREN_R)
		case token.PAREN_R:
			p.ReadToken()
			v := lisp.List(cells...)
			v.Source = open.Source
			return v, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		cells = append(cells, x)
	}
}

// ParseAtom consumes exactly one token and returns the value it denotes.
func (p *Parser) ParseAtom() (*lisp.LVal, error) {
	tok := p.ReadToken()
	switch tok.Type {
	case token.INT:
		x, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			// The lexer only emits INT tokens for text that parses.
			return p.tokenLVal(lisp.Symbol(tok.Text)), nil
		}
		return p.tokenLVal(lisp.Int(x)), nil
	case token.STRING:
		return p.tokenLVal(lisp.String(tok.Text)), nil
	case token.SYMBOL:
		return p.tokenLVal(translateSymbol(tok.Text)), nil
	default:
		return nil, p.unexpected(token.INVALID)
	}
}

// translateSymbol maps the constant names onto their values.  The names
// true, false, and nil can never be bound as ordinary symbols.
func translateSymbol(sym string) *lisp.LVal {
	switch sym {
	case "true":
		return lisp.Bool(true)
	case "false":
		return lisp.Bool(false)
	case "nil":
		return lisp.Nil()
	default:
		return lisp.Symbol(sym)
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Token().Source
	return v
}

// unexpected returns an error describing the current token, which was read
// where a token of type expected should have been.  An expected type of
// token.INVALID means any expression would have been accepted.
func (p *Parser) unexpected(expected token.Type) error {
	tok := p.Token()
	err := &ParseError{
		Source:   tok.Source,
		Expected: expected,
		Got:      tok,
	}
	switch tok.Type {
	case token.EOF:
		err.Kind = UnexpectedEOF
	case token.ERROR, token.INVALID:
		err.Kind = ScanError
	default:
		err.Kind = UnexpectedToken
	}
	return err
}
