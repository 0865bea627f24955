/*
File    : camps/ast/expr.go

Package ast defines CAMPS's abstract syntax tree: one struct per expression
and statement shape named in spec.md §4.2, in the teacher's node-per-shape
style (parser/node.go), split into its own package because spec.md §2 lists
"AST (Expr, Stmt)" as a component distinct from the parser that builds it.
*/
package ast

import (
	"github.com/camps-lang/camps/token"
	"github.com/camps-lang/camps/value"
)

// Expr is any expression node. exprNode is unexported so only this package
// can introduce new expression shapes.
type Expr interface {
	exprNode()
	Line() int
}

// LiteralExpr wraps a constant value produced directly by the scanner (an
// int/float/bool literal) or by a bare type keyword (INTEGER evaluates to
// value.TypeValue{IntType}, spec.md §4.4).
type LiteralExpr struct {
	Value value.Value
	Ln    int
}

func (*LiteralExpr) exprNode() {}
func (e *LiteralExpr) Line() int { return e.Ln }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Inner Expr
	Ln    int
}

func (*GroupingExpr) exprNode() {}
func (e *GroupingExpr) Line() int { return e.Ln }

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Name string
	Ln   int
}

func (*IdentExpr) exprNode() {}
func (e *IdentExpr) Line() int { return e.Ln }

// CallExpr is `name(args...)`, either a function call or (in statement
// position) a procedure call's expression form.
type CallExpr struct {
	Name string
	Args []Expr
	Ln   int
}

func (*CallExpr) exprNode() {}
func (e *CallExpr) Line() int { return e.Ln }

// IndexExpr is `name[i1]` or `name[i1,i2]`.
type IndexExpr struct {
	Name   string
	Index1 Expr
	Index2 Expr // nil for a 1D access
	Ln     int
}

func (*IndexExpr) exprNode() {}
func (e *IndexExpr) Line() int { return e.Ln }

// BinaryExpr is a left-associative binary operation at any of the five
// binary precedence levels in spec.md §4.2.
type BinaryExpr struct {
	Op    token.Type
	Left  Expr
	Right Expr
	Ln    int
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) Line() int { return e.Ln }

// UnaryExpr is prefix `-` or `NOT`.
type UnaryExpr struct {
	Op    token.Type
	Right Expr
	Ln    int
}

func (*UnaryExpr) exprNode() {}
func (e *UnaryExpr) Line() int { return e.Ln }

// ArrayTypeExpr is `ARRAY[a:b,c:d] OF T`, a type expression that evaluates
// to a value.TypeValue (spec.md §4.2, §4.4).
type ArrayTypeExpr struct {
	D1Start, D1End Expr
	D2Start, D2End Expr // both nil for a 1D array
	Inner          Expr
	Ln             int
}

func (*ArrayTypeExpr) exprNode() {}
func (e *ArrayTypeExpr) Line() int { return e.Ln }
