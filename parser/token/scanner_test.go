package token

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab\nc"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "ab", tok.Text)
	assert.Equal(t, "test:1:1", tok.Source.String())

	require.NoError(t, s.ScanRune())
	assert.Equal(t, '\n', s.Rune())
	s.Ignore()

	c, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'c', c)
	require.NoError(t, s.ScanRune())
	tok = s.EmitToken(SYMBOL)
	assert.Equal(t, "c", tok.Text)
	assert.Equal(t, &Location{File: "test", Pos: 3, Line: 2, Col: 1}, tok.Source)

	assert.True(t, s.EOF())
	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, io.EOF, s.ScanRune())
}

func TestScanner_invalidUTF8(t *testing.T) {
	s := NewScanner("test", strings.NewReader("a\xff"))
	require.NoError(t, s.ScanRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	err := s.ScanRune()
	var uerr *InvalidUTF8Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 1, uerr.Pos)
	assert.Equal(t, byte(0xff), uerr.Byte)
}

func TestLocation_String(t *testing.T) {
	var loc *Location
	assert.Equal(t, "?", loc.String())
	assert.Equal(t, "f[3]", (&Location{File: "f", Pos: 3}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Line: 2}).String())
	assert.Equal(t, "f:2:5", (&Location{File: "f", Line: 2, Col: 5}).String())
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "'a b'", (&Token{Type: STRING, Text: "a b"}).String())
	assert.Equal(t, "EOF", (&Token{Type: EOF}).String())
	assert.Equal(t, "abc", (&Token{Type: SYMBOL, Text: "abc"}).String())
	assert.Equal(t, "(", PAREN_L.String())
	assert.Equal(t, "invalid", Type(100).String())
}
