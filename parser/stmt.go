/*
File    : camps/parser/stmt.go

Statement parsing, dispatched on the first token per spec.md §4.2's table.
*/
package parser

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/token"
)

func (p *Parser) statement() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case token.Declare:
		return p.declareStmt()
	case token.Constant:
		return p.constantStmt()
	case token.Call:
		return p.callStmt()
	case token.Input:
		return p.inputStmt()
	case token.Output:
		return p.outputStmt()
	case token.Return:
		return p.returnStmt()
	case token.Procedure:
		return p.procDeclStmt()
	case token.Function:
		return p.funcDeclStmt()
	case token.For:
		return p.forStmt()
	case token.If:
		return p.ifStmt()
	case token.Case:
		return p.caseStmt()
	case token.Repeat:
		return p.repeatStmt()
	case token.While:
		return p.whileStmt()
	case token.Openfile, token.Closefile, token.Readfile, token.Writefile,
		token.Getrecord, token.Putrecord, token.Seek, token.TypeKw:
		return p.unsupportedStmt()
	default:
		return p.exprOrAssignStmt()
	}
}

func (p *Parser) declareStmt() (ast.Stmt, error) {
	p.advance() // DECLARE
	name, err := p.expect(token.Ident, "after DECLARE")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, "after declared name"); err != nil {
		return nil, err
	}
	te, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.DeclareStmt{Name: name.Lexeme, TypeExpr: te}, nil
}

func (p *Parser) constantStmt() (ast.Stmt, error) {
	p.advance() // CONSTANT
	name, err := p.expect(token.Ident, "after CONSTANT")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "after constant name"); err != nil {
		return nil, err
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ConstantStmt{Name: name.Lexeme, Expr: e}, nil
}

// exprOrAssignStmt parses an expression; if `<-` follows, it's an
// assignment, otherwise the expression is evaluated for its side effects
// (and discarded) as a bare ExprStmt (spec.md §4.2).
func (p *Parser) exprOrAssignStmt() (ast.Stmt, error) {
	lhs, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.match(token.Arrow) {
		rhs, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Lhs: lhs, Rhs: rhs}, nil
	}
	return &ast.ExprStmt{Expr: lhs}, nil
}

func (p *Parser) callStmt() (ast.Stmt, error) {
	tok := p.advance() // CALL
	name, err := p.expect(token.Ident, "after CALL")
	if err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.match(token.LParen) {
		args, err = p.argList(token.RParen)
		if err != nil {
			return nil, err
		}
	}
	return &ast.ProcCallStmt{Name: name.Lexeme, Args: args, Ln: tok.Line}, nil
}

func (p *Parser) inputStmt() (ast.Stmt, error) {
	p.advance() // INPUT
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.InputStmt{Target: e}, nil
}

func (p *Parser) outputStmt() (ast.Stmt, error) {
	p.advance() // OUTPUT
	var exprs []ast.Expr
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, e)
	for p.match(token.Comma) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return &ast.OutputStmt{Exprs: exprs}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	p.advance() // RETURN
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: e}, nil
}

// paramList parses the comma-separated formal parameter list of a
// PROCEDURE/FUNCTION declaration (spec.md §4.2).
func (p *Parser) paramList() ([]ast.Param, error) {
	var params []ast.Param
	if p.check(token.RParen) {
		return params, nil
	}
	for {
		byRef := false
		if p.match(token.Byref) {
			byRef = true
		} else {
			p.match(token.Byvalue)
		}
		name, err := p.expect(token.Ident, "in parameter list")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "after parameter name"); err != nil {
			return nil, err
		}
		te, err := p.expression()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Lexeme, TypeExpr: te, ByRef: byRef})
		if p.match(token.Comma) {
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) procDeclStmt() (ast.Stmt, error) {
	p.advance() // PROCEDURE
	name, err := p.expect(token.Ident, "after PROCEDURE")
	if err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.match(token.LParen) {
		params, err = p.paramList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "to close parameter list"); err != nil {
			return nil, err
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	body, _, err := p.block(token.Endprocedure)
	if err != nil {
		return nil, err
	}
	return &ast.ProcDeclStmt{Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) funcDeclStmt() (ast.Stmt, error) {
	p.advance() // FUNCTION
	name, err := p.expect(token.Ident, "after FUNCTION")
	if err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.match(token.LParen) {
		params, err = p.paramList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "to close parameter list"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Returns, "after function parameter list"); err != nil {
		return nil, err
	}
	retType, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	body, _, err := p.block(token.Endfunction)
	if err != nil {
		return nil, err
	}
	return &ast.FuncDeclStmt{Name: name.Lexeme, Params: params, RetType: retType, Body: body}, nil
}

func (p *Parser) forStmt() (ast.Stmt, error) {
	p.advance() // FOR
	name, err := p.expect(token.Ident, "after FOR")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Arrow, "after FOR loop variable"); err != nil {
		return nil, err
	}
	start, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.To, "in FOR loop bounds"); err != nil {
		return nil, err
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	var step ast.Expr
	if p.match(token.Step) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	body, _, err := p.block(token.Endfor)
	if err != nil {
		return nil, err
	}
	p.match(token.Ident) // optional, unchecked trailing loop-variable name
	return &ast.ForStmt{Var: name.Lexeme, Start: start, End: end, Step: step, Body: body}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	p.advance() // IF
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Then, "after IF condition"); err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	thenBlk, hit, err := p.block(token.Else, token.Endif)
	if err != nil {
		return nil, err
	}
	if hit == token.Endif {
		return &ast.IfStmt{Cond: cond, Then: thenBlk}, nil
	}
	elseBlk, _, err := p.block(token.Endif)
	if err != nil {
		return nil, err
	}
	return &ast.IfStmt{Cond: cond, Then: thenBlk, Else: elseBlk}, nil
}

func (p *Parser) caseStmt() (ast.Stmt, error) {
	p.advance() // CASE
	if _, err := p.expect(token.Of, "after CASE"); err != nil {
		return nil, err
	}
	subject, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}

	stmt := &ast.CaseStmt{Subject: subject}
	p.skipBlank()
	for {
		if p.match(token.Endcase) {
			return stmt, nil
		}
		if p.match(token.Otherwise) {
			if _, err := p.expect(token.Colon, "after OTHERWISE"); err != nil {
				return nil, err
			}
			otherwise, err := p.statement()
			if err != nil {
				return nil, err
			}
			stmt.Otherwise = otherwise
			if err := p.endStatement(); err != nil {
				return nil, err
			}
			p.skipBlank()
			if _, err := p.expect(token.Endcase, "to close CASE"); err != nil {
				return nil, err
			}
			return stmt, nil
		}
		label, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "after CASE label"); err != nil {
			return nil, err
		}
		arm, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmt.Arms = append(stmt.Arms, ast.CaseArm{Label: label, Stmt: arm})
		if err := p.endStatement(); err != nil {
			return nil, err
		}
		p.skipBlank()
	}
}

func (p *Parser) repeatStmt() (ast.Stmt, error) {
	p.advance() // REPEAT
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	body, _, err := p.block(token.Until)
	if err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatStmt{Body: body, Cond: cond}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	p.advance() // WHILE
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Do, "after WHILE condition"); err != nil {
		return nil, err
	}
	if err := p.endStatement(); err != nil {
		return nil, err
	}
	body, _, err := p.block(token.Endwhile)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

// unsupportedStmt accepts (but does not interpret) the file-I/O and TYPE
// keywords, consuming tokens through end of line (for TYPE, through the
// closing ENDTYPE and the rest of its line) so the rest of the program
// still parses (spec.md §1 Non-goals; see DESIGN.md).
func (p *Parser) unsupportedStmt() (ast.Stmt, error) {
	tok := p.advance()
	if tok.Type == token.TypeKw {
		for !p.checkAny(token.Endtype, token.End) {
			p.advance()
		}
		if _, err := p.expect(token.Endtype, "to close TYPE"); err != nil {
			return nil, err
		}
	}
	for !p.checkAny(token.NL, token.End) {
		p.advance()
	}
	return &ast.UnsupportedStmt{Keyword: tok.Lexeme, Ln: tok.Line}, nil
}
