/*
File    : camps/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/camps-lang/camps/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScan_OperatorsAndLiterals(t *testing.T) {
	toks, err := Scan(`1 + 2 * 3`)
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{token.Int, token.Plus, token.Int, token.Star, token.Int, token.End}, typesOf(toks))
}

func TestScan_CompositeOperators(t *testing.T) {
	toks, err := Scan(`x <- 1 <= 2 >= 3 <> 4`)
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.Ident, token.Arrow, token.Int, token.LessEqual, token.Int,
		token.GreaterEqual, token.Int, token.NotEqual, token.Int, token.End,
	}, typesOf(toks))
}

func TestScan_Keywords(t *testing.T) {
	toks, err := Scan("DECLARE x : INTEGER")
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{token.Declare, token.Ident, token.Colon, token.Integer, token.End}, typesOf(toks))
}

func TestScan_FloatRequiresTrailingDigit(t *testing.T) {
	toks, err := Scan("3.14")
	assert.NoError(t, err)
	assert.Equal(t, token.Float, toks[0].Type)
	assert.Equal(t, "3.14", toks[0].Lexeme)
}

func TestScan_DotWithoutDigitIsNotAFloat(t *testing.T) {
	toks, err := Scan("3.")
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{token.Int, token.Dot, token.End}, typesOf(toks))
}

func TestScan_NewlineRunCollapsesToOneToken(t *testing.T) {
	toks, err := Scan("x\n\n\n  \ny")
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{token.Ident, token.NL, token.Ident, token.End}, typesOf(toks))
}

func TestScan_LineComment(t *testing.T) {
	toks, err := Scan("x // a comment\ny")
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{token.Ident, token.NL, token.Ident, token.End}, typesOf(toks))
}

func TestScan_UnrecognizedCharacterIsLexError(t *testing.T) {
	_, err := Scan(`x <- "hi"`)
	assert.Error(t, err)
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestScan_TracksLineNumbers(t *testing.T) {
	toks, err := Scan("x\ny\nz")
	assert.NoError(t, err)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[2].Line)
	assert.Equal(t, 3, toks[4].Line)
}
