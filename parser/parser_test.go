/*
File    : camps/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camps-lang/camps/ast"
)

func TestParse_Declare(t *testing.T) {
	blk, err := Parse("DECLARE x : INTEGER\n")
	require.NoError(t, err)
	require.Len(t, blk.Stmts, 1)
	d, ok := blk.Stmts[0].(*ast.DeclareStmt)
	require.True(t, ok)
	assert.Equal(t, "x", d.Name)
}

func TestParse_ConstantAndAssign(t *testing.T) {
	blk, err := Parse("CONSTANT pi = 3\nx <- pi + 1\n")
	require.NoError(t, err)
	require.Len(t, blk.Stmts, 2)
	_, ok := blk.Stmts[0].(*ast.ConstantStmt)
	require.True(t, ok)
	a, ok := blk.Stmts[1].(*ast.AssignStmt)
	require.True(t, ok)
	_, ok = a.Lhs.(*ast.IdentExpr)
	require.True(t, ok)
}

func TestParse_BareExprStmt(t *testing.T) {
	blk, err := Parse("f(1, 2)\n")
	require.NoError(t, err)
	require.Len(t, blk.Stmts, 1)
	es, ok := blk.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = es.Expr.(*ast.CallExpr)
	require.True(t, ok)
}

func TestParse_IndexAssign(t *testing.T) {
	blk, err := Parse("a[1, 2] <- 5\n")
	require.NoError(t, err)
	a, ok := blk.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	ix, ok := a.Lhs.(*ast.IndexExpr)
	require.True(t, ok)
	assert.NotNil(t, ix.Index2)
}

func TestParse_CallStmtWithAndWithoutArgs(t *testing.T) {
	blk, err := Parse("CALL greet\nCALL add(1, 2)\n")
	require.NoError(t, err)
	require.Len(t, blk.Stmts, 2)
	c1 := blk.Stmts[0].(*ast.ProcCallStmt)
	assert.Nil(t, c1.Args)
	c2 := blk.Stmts[1].(*ast.ProcCallStmt)
	assert.Len(t, c2.Args, 2)
}

func TestParse_InputOutput(t *testing.T) {
	blk, err := Parse("INPUT x\nOUTPUT x, 1, 2\n")
	require.NoError(t, err)
	_, ok := blk.Stmts[0].(*ast.InputStmt)
	require.True(t, ok)
	o := blk.Stmts[1].(*ast.OutputStmt)
	assert.Len(t, o.Exprs, 3)
}

func TestParse_ProcedureDecl(t *testing.T) {
	src := "PROCEDURE greet(BYREF name : STRING, age : INTEGER)\n" +
		"OUTPUT name\n" +
		"ENDPROCEDURE\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	p := blk.Stmts[0].(*ast.ProcDeclStmt)
	assert.Equal(t, "greet", p.Name)
	require.Len(t, p.Params, 2)
	assert.True(t, p.Params[0].ByRef)
	assert.False(t, p.Params[1].ByRef)
	assert.Len(t, p.Body.Stmts, 1)
}

func TestParse_FunctionDecl(t *testing.T) {
	src := "FUNCTION sq(n : INTEGER) RETURNS INTEGER\n" +
		"RETURN n * n\n" +
		"ENDFUNCTION\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	f := blk.Stmts[0].(*ast.FuncDeclStmt)
	assert.Equal(t, "sq", f.Name)
	require.Len(t, f.Params, 1)
}

func TestParse_ForWithStep(t *testing.T) {
	src := "FOR i <- 1 TO 10 STEP 2\nOUTPUT i\nENDFOR\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	f := blk.Stmts[0].(*ast.ForStmt)
	assert.Equal(t, "i", f.Var)
	assert.NotNil(t, f.Step)
}

func TestParse_ForWithoutStep(t *testing.T) {
	src := "FOR i <- 1 TO 10\nOUTPUT i\nENDFOR\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	f := blk.Stmts[0].(*ast.ForStmt)
	assert.Nil(t, f.Step)
}

func TestParse_IfElse(t *testing.T) {
	src := "IF x > 0\nTHEN\nOUTPUT 1\nELSE\nOUTPUT 2\nENDIF\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	i := blk.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, i.Then)
	require.NotNil(t, i.Else)
}

func TestParse_IfNoElse(t *testing.T) {
	src := "IF x > 0\nTHEN\nOUTPUT 1\nENDIF\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	i := blk.Stmts[0].(*ast.IfStmt)
	assert.Nil(t, i.Else)
}

func TestParse_CaseWithOtherwise(t *testing.T) {
	src := "CASE OF x\n1 : OUTPUT 1\n2 : OUTPUT 2\nOTHERWISE: OUTPUT 3\nENDCASE\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	c := blk.Stmts[0].(*ast.CaseStmt)
	assert.Len(t, c.Arms, 2)
	assert.NotNil(t, c.Otherwise)
}

func TestParse_RepeatUntil(t *testing.T) {
	src := "REPEAT\nx <- x + 1\nUNTIL x > 10\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	r := blk.Stmts[0].(*ast.RepeatStmt)
	assert.Len(t, r.Body.Stmts, 1)
	assert.NotNil(t, r.Cond)
}

func TestParse_WhileDo(t *testing.T) {
	src := "WHILE x < 10 DO\nx <- x + 1\nENDWHILE\n"
	blk, err := Parse(src)
	require.NoError(t, err)
	w := blk.Stmts[0].(*ast.WhileStmt)
	assert.Len(t, w.Body.Stmts, 1)
}

func TestParse_ArrayTypeDecl(t *testing.T) {
	blk, err := Parse("DECLARE a : ARRAY[1:10] OF INTEGER\n")
	require.NoError(t, err)
	d := blk.Stmts[0].(*ast.DeclareStmt)
	at, ok := d.TypeExpr.(*ast.ArrayTypeExpr)
	require.True(t, ok)
	assert.Nil(t, at.D2Start)
}

func TestParse_2DArrayTypeDecl(t *testing.T) {
	blk, err := Parse("DECLARE a : ARRAY[1:10, 1:5] OF REAL\n")
	require.NoError(t, err)
	d := blk.Stmts[0].(*ast.DeclareStmt)
	at, ok := d.TypeExpr.(*ast.ArrayTypeExpr)
	require.True(t, ok)
	assert.NotNil(t, at.D2Start)
}

func TestParse_UnsupportedFileStmtIsConsumedNotFailed(t *testing.T) {
	blk, err := Parse("OPENFILE f FOR READ\nOUTPUT 1\n")
	require.NoError(t, err)
	require.Len(t, blk.Stmts, 2)
	u, ok := blk.Stmts[0].(*ast.UnsupportedStmt)
	require.True(t, ok)
	assert.Equal(t, "OPENFILE", u.Keyword)
}

func TestParse_PrecedenceOfOperators(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), not (1 + 2) * 3.
	blk, err := Parse("x <- 1 + 2 * 3\n")
	require.NoError(t, err)
	a := blk.Stmts[0].(*ast.AssignStmt)
	bin := a.Rhs.(*ast.BinaryExpr)
	assert.Equal(t, "+", string(bin.Op))
	rightMul, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", string(rightMul.Op))
}

func TestParse_UnexpectedTokenIsParseError(t *testing.T) {
	_, err := Parse("DECLARE : INTEGER\n")
	assert.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
