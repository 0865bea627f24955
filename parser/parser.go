/*
File    : camps/parser/parser.go

Package parser is a single-pass, single-lookahead recursive-descent parser
(spec.md §4.2) over a CAMPS token stream, producing one ast.Block for the
whole program. Structured like the teacher's parser/parser.go: a flat token
slice, a peek/advance pair, and one parse method per grammar production —
except CAMPS fixes its operator precedence as an explicit chain of methods
(equality, logical, comparison, additive, multiplicative, unary, primary)
rather than a Pratt-style precedence table, because spec.md §4.2 gives that
chain literally rather than leaving precedence to be inferred.
*/
package parser

import (
	"strconv"

	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/lexer"
	"github.com/camps-lang/camps/token"
	"github.com/camps-lang/camps/value"
)

// Parser consumes a fixed token slice left to right, one lookahead token
// at a time. There is no backtracking: every parse method either
// consumes what it expects or returns a *ParseError, and the caller
// higher up the call stack propagates that error rather than trying an
// alternative production.
//
// Fields:
//   - toks: the complete token stream produced by lexer.Scan, always
//     ending in a token.End
//   - pos: the index of the current (not-yet-consumed) token in toks
type Parser struct {
	toks []token.Token
	pos  int
}

// New builds a Parser over an already-scanned token stream. Most callers
// want the Parse convenience function instead, which also runs the
// lexer.
//
// Parameters:
//   - toks: a token stream ending in token.End
//
// Returns:
//   - *Parser: a parser positioned at the first token
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse scans src and parses it into the program's top-level Block. This
// is the single entry point cmd/camps uses; it chains the lexer and the
// parser so callers never handle a bare token stream themselves.
//
// Parameters:
//   - src: CAMPS source text
//
// Returns:
//   - *ast.Block: the top-level program, ready for eval.Evaluator.Run
//   - error: the first *lexer.LexError or *ParseError encountered
//
// Example:
//
//	blk, err := parser.Parse("OUTPUT 1 + 2\n")
func Parse(src string) (*ast.Block, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

// ParseProgram parses the whole token stream as a single top-level Block
// terminated by token.End — the grammar's start symbol (spec.md §4.2).
func (p *Parser) ParseProgram() (*ast.Block, error) {
	blk, _, err := p.block(token.End)
	return blk, err
}

// peek returns the current, not-yet-consumed token without advancing.
func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// advance returns the current token and moves past it, unless it is
// already the final token.End, which advance never steps beyond (the
// caller must always be able to re-peek token.End rather than index
// past the end of toks).
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// check reports whether the current token has type t, without consuming
// it.
func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

// checkAny reports whether the current token's type is any of ts.
func (p *Parser) checkAny(ts ...token.Type) bool {
	cur := p.peek().Type
	for _, t := range ts {
		if cur == t {
			return true
		}
	}
	return false
}

// match consumes the current token and returns true if it has type t,
// otherwise leaves the stream untouched and returns false. This is the
// parser's one "optional token" primitive — every grammar production
// that allows a token but doesn't require it (STEP, a trailing ELSE, …)
// is built on match.
func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes and returns the current token if it has type t,
// otherwise returns a *ParseError naming t, the offending lexeme, and
// context (a short human-readable description of what was being parsed,
// e.g. "after IF condition") so the error message reads as a sentence.
func (p *Parser) expect(t token.Type, context string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	tok := p.peek()
	return token.Token{}, &ParseError{Line: tok.Line, Lexeme: tok.Lexeme, Message: "expected " + string(t) + " " + context}
}

// errorf builds a *ParseError at the current token with a caller-supplied
// message, for productions that don't fit expect's "expected token X"
// shape (e.g. "unexpected end of input").
func (p *Parser) errorf(message string) error {
	tok := p.peek()
	return &ParseError{Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
}

// skipBlank consumes any leading NL tokens. The scanner collapses a run of
// source newlines into one NL token, but a `//` comment line between two
// newlines ends that run, so consecutive NL tokens can still occur.
func (p *Parser) skipBlank() {
	for p.match(token.NL) {
	}
}

// endStatement enforces "each statement must be followed by NL or End,
// which is consumed" (spec.md §4.2).
func (p *Parser) endStatement() error {
	if p.match(token.NL) {
		return nil
	}
	if p.check(token.End) {
		return nil
	}
	return p.errorf("expected newline after statement")
}

// block parses statements until the current token matches one of the
// given terminators, consuming the terminator. Blank lines between
// statements are legal (spec.md §4.2); reaching token.End before any of
// terms is always an error, since every construct that calls block
// names its own closing keyword (ENDIF, ENDFOR, …) or, at the top
// level, token.End itself.
//
// Parameters:
//   - terms: the token types that legally close this block
//
// Returns:
//   - *ast.Block: the parsed statement list
//   - token.Type: which of terms was actually hit
//   - error: the first parse failure, if any
func (p *Parser) block(terms ...token.Type) (*ast.Block, token.Type, error) {
	blk := &ast.Block{}
	p.skipBlank()
	for {
		if p.checkAny(terms...) {
			hit := p.advance().Type
			return blk, hit, nil
		}
		if p.check(token.End) {
			return nil, "", p.errorf("unexpected end of input")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, "", err
		}
		blk.Stmts = append(blk.Stmts, stmt)
		if err := p.endStatement(); err != nil {
			return nil, "", err
		}
		p.skipBlank()
	}
}

// parseIntLexeme converts an Int token's lexeme to a value.Int literal.
// The lexer only ever produces a digit run here, so the only possible
// failure is overflowing int32.
func parseIntLexeme(lexeme string, line int) (value.Value, error) {
	n, err := strconv.ParseInt(lexeme, 10, 32)
	if err != nil {
		return nil, &ParseError{Line: line, Lexeme: lexeme, Message: "invalid integer literal"}
	}
	return value.Int(n), nil
}

// parseFloatLexeme converts a Float token's lexeme to a value.Float
// literal, mirroring parseIntLexeme.
func parseFloatLexeme(lexeme string, line int) (value.Value, error) {
	f, err := strconv.ParseFloat(lexeme, 32)
	if err != nil {
		return nil, &ParseError{Line: line, Lexeme: lexeme, Message: "invalid real literal"}
	}
	return value.Float(f), nil
}
