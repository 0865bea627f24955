/*
File    : camps/parser/expr.go

Expression parsing, precedence lowest to highest per spec.md §4.2:
  1. equality       (= <>)
  2. logical        (AND OR)
  3. comparison     (< > <= >=)
  4. additive       (+ -)
  5. multiplicative (* / MOD DIV)
  6. unary          (prefix - NOT)
  7. primary
All binary levels are left-associative.
*/
package parser

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/token"
	"github.com/camps-lang/camps/value"
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.equality()
}

func (p *Parser) equality() (ast.Expr, error) {
	left, err := p.logical()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Equal, token.NotEqual) {
		opTok := p.advance()
		right, err := p.logical()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: opTok.Type, Left: left, Right: right, Ln: opTok.Line}
	}
	return left, nil
}

func (p *Parser) logical() (ast.Expr, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.And, token.Or) {
		opTok := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: opTok.Type, Left: left, Right: right, Ln: opTok.Line}
	}
	return left, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Less, token.Greater, token.LessEqual, token.GreaterEqual) {
		opTok := p.advance()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: opTok.Type, Left: left, Right: right, Ln: opTok.Line}
	}
	return left, nil
}

func (p *Parser) additive() (ast.Expr, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Plus, token.Minus) {
		opTok := p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: opTok.Type, Left: left, Right: right, Ln: opTok.Line}
	}
	return left, nil
}

func (p *Parser) multiplicative() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.Star, token.Slash, token.Mod, token.Div) {
		opTok := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: opTok.Type, Left: left, Right: right, Ln: opTok.Line}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.checkAny(token.Minus, token.Not) {
		opTok := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: opTok.Type, Right: right, Ln: opTok.Line}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case token.Int:
		p.advance()
		v, err := parseIntLexeme(tok.Lexeme, tok.Line)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Value: v, Ln: tok.Line}, nil

	case token.Float:
		p.advance()
		v, err := parseFloatLexeme(tok.Lexeme, tok.Line)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Value: v, Ln: tok.Line}, nil

	case token.True:
		p.advance()
		return &ast.LiteralExpr{Value: value.Bool(true), Ln: tok.Line}, nil

	case token.False:
		p.advance()
		return &ast.LiteralExpr{Value: value.Bool(false), Ln: tok.Line}, nil

	case token.Read:
		p.advance()
		return &ast.LiteralExpr{Value: value.ModeRead, Ln: tok.Line}, nil
	case token.Write:
		p.advance()
		return &ast.LiteralExpr{Value: value.ModeWrite, Ln: tok.Line}, nil
	case token.Append:
		p.advance()
		return &ast.LiteralExpr{Value: value.ModeAppend, Ln: tok.Line}, nil
	case token.Random:
		p.advance()
		return &ast.LiteralExpr{Value: value.ModeRandom, Ln: tok.Line}, nil

	case token.Boolean:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.BoolType}, Ln: tok.Line}, nil
	case token.Integer:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.IntType}, Ln: tok.Line}, nil
	case token.Real:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.FloatType}, Ln: tok.Line}, nil
	case token.CharKw:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.CharType}, Ln: tok.Line}, nil
	case token.StringKw:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.StringType}, Ln: tok.Line}, nil
	case token.DateKw:
		p.advance()
		return &ast.LiteralExpr{Value: value.TypeValue{T: value.DateType}, Ln: tok.Line}, nil

	case token.ArrayKw:
		return p.arrayTypeExpr()

	case token.LParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "to close '('"); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{Inner: inner, Ln: tok.Line}, nil

	case token.Ident:
		p.advance()
		return p.identTail(tok)

	default:
		return nil, p.errorf("expected an expression")
	}
}

// identTail parses what may follow a bare identifier: a call's argument
// list, an index expression, or nothing (a variable reference).
func (p *Parser) identTail(name token.Token) (ast.Expr, error) {
	switch {
	case p.check(token.LParen):
		p.advance()
		args, err := p.argList(token.RParen)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Name: name.Lexeme, Args: args, Ln: name.Line}, nil

	case p.check(token.LBracket):
		p.advance()
		i1, err := p.expression()
		if err != nil {
			return nil, err
		}
		var i2 ast.Expr
		if p.match(token.Comma) {
			i2, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RBracket, "to close '['"); err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Name: name.Lexeme, Index1: i1, Index2: i2, Ln: name.Line}, nil

	default:
		return &ast.IdentExpr{Name: name.Lexeme, Ln: name.Line}, nil
	}
}

// argList parses a comma-separated expression list up to (and consuming)
// closer, allowing zero arguments.
func (p *Parser) argList(closer token.Type) ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(closer) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(token.Comma) {
			continue
		}
		break
	}
	if _, err := p.expect(closer, "to close argument list"); err != nil {
		return nil, err
	}
	return args, nil
}

// arrayTypeExpr parses `ARRAY[a:b,c:d] OF T` (spec.md §4.2).
func (p *Parser) arrayTypeExpr() (ast.Expr, error) {
	tok := p.advance() // ARRAY
	if _, err := p.expect(token.LBracket, "after ARRAY"); err != nil {
		return nil, err
	}
	d1s, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "in array bounds"); err != nil {
		return nil, err
	}
	d1e, err := p.expression()
	if err != nil {
		return nil, err
	}

	var d2s, d2e ast.Expr
	if p.match(token.Comma) {
		d2s, err = p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "in array bounds"); err != nil {
			return nil, err
		}
		d2e, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RBracket, "to close array bounds"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Of, "after array bounds"); err != nil {
		return nil, err
	}
	inner, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ArrayTypeExpr{D1Start: d1s, D1End: d1e, D2Start: d2s, D2End: d2e, Inner: inner, Ln: tok.Line}, nil
}
