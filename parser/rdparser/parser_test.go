package rdparser

import (
	"strings"
	"testing"

	"github.com/luthersystems/tlisp/lisp"
	"github.com/luthersystems/tlisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(src string) *Parser {
	return New(token.NewScanner("test", strings.NewReader(src)))
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src    string
		result string
		typ    lisp.LValType
	}{
		{"1", "1", lisp.LInt},
		{"-12", "-12", lisp.LInt},
		{"abc", "abc", lisp.LSymbol},
		{"'abc'", "'abc'", lisp.LString},
		{"''", "''", lisp.LString},
		{"true", "true", lisp.LBool},
		{"false", "false", lisp.LBool},
		{"nil", "nil", lisp.LNil},
		{"()", "()", lisp.LList},
		{"(1 (2 3) 'x')", "(1 (2 3) 'x')", lisp.LList},
		{"  ( +   1\n 2 )  ", "(+ 1 2)", lisp.LList},
		{"1 2", "1", lisp.LInt},
	}
	for _, test := range tests {
		v, err := newParser(test.src).ParseExpression()
		if assert.NoError(t, err, test.src) {
			assert.Equal(t, test.typ, v.Type, test.src)
			assert.Equal(t, test.result, v.String(), test.src)
		}
	}
}

func TestParseExpression_errors(t *testing.T) {
	tests := []struct {
		src       string
		kind      ErrorKind
		condition string
		msg       string
	}{
		{"", UnexpectedEOF, "unexpected-eof", "test:1:1: expected any input but got EOF"},
		{"(1 2", UnexpectedEOF, "unexpected-eof", "test:1:5: expected ')' but got EOF"},
		{")", UnexpectedToken, "unexpected-token", "test:1:1: unexpected ')'"},
		{"(a \xff)", ScanError, "scan-error", ""},
	}
	for _, test := range tests {
		_, err := newParser(test.src).ParseExpression()
		var perr *ParseError
		if assert.ErrorAs(t, err, &perr, test.src) {
			assert.Equal(t, test.kind, perr.Kind, test.src)
			assert.Equal(t, test.condition, lisp.Condition(err), test.src)
			if test.msg != "" {
				assert.Equal(t, test.msg, err.Error(), test.src)
			}
		}
	}
}

func TestParseProgram(t *testing.T) {
	exprs, err := newParser("(def! x 1)\n(+ x 2) 'done'").ParseProgram()
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, "(def! x 1)", exprs[0].String())
	assert.Equal(t, "(+ x 2)", exprs[1].String())
	assert.Equal(t, "'done'", exprs[2].String())
	assert.Equal(t, "test:2:1", exprs[1].Source.String())

	exprs, err = newParser("   ").ParseProgram()
	assert.NoError(t, err)
	assert.Len(t, exprs, 0)

	_, err = newParser("(a) (b").ParseProgram()
	assert.Error(t, err)
}

func TestReader(t *testing.T) {
	r := NewReader()
	v, err := r.ReadForm("test", strings.NewReader("(a b) c"))
	require.NoError(t, err)
	assert.Equal(t, "(a b)", v.String())

	vs, err := r.Read("test", strings.NewReader("(a b) c"))
	require.NoError(t, err)
	assert.Len(t, vs, 2)
}
