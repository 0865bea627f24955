/*
File    : camps/eval/expr.go

Expression evaluation (spec.md §4.4 "Expression semantics").
*/
package eval

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/token"
	"github.com/camps-lang/camps/value"
)

// EvalExpr dispatches one expression to its handler.
func (e *Evaluator) EvalExpr(expr ast.Expr, fr *env.Env) (value.Value, error) {
	switch x := expr.(type) {
	case *ast.LiteralExpr:
		return x.Value, nil

	case *ast.GroupingExpr:
		return e.EvalExpr(x.Inner, fr)

	case *ast.IdentExpr:
		return fr.GetStack(x.Name)

	case *ast.CallExpr:
		return e.callFuncExpr(x, fr)

	case *ast.IndexExpr:
		i1, i2, err := e.evalIndices(x, fr)
		if err != nil {
			return nil, err
		}
		return fr.GetIdx(x.Name, i1, i2)

	case *ast.BinaryExpr:
		return e.evalBinary(x, fr)

	case *ast.UnaryExpr:
		return e.evalUnary(x, fr)

	case *ast.ArrayTypeExpr:
		return e.evalArrayType(x, fr)

	default:
		return nil, env.ErrfLine(expr.Line(), "cannot evaluate expression of type %T", expr)
	}
}

// evalIndices evaluates an IndexExpr's bounds, requiring Int results
// (spec.md §4.4: "ArrIdx(n, i1, i2?) — ... require i1, i2 Int").
func (e *Evaluator) evalIndices(x *ast.IndexExpr, fr *env.Env) (int, *int, error) {
	v1, err := e.EvalExpr(x.Index1, fr)
	if err != nil {
		return 0, nil, err
	}
	i1, ok := v1.(value.Int)
	if !ok {
		return 0, nil, env.ErrfLine(x.Line(), "array index must be INTEGER")
	}
	if x.Index2 == nil {
		return int(i1), nil, nil
	}
	v2, err := e.EvalExpr(x.Index2, fr)
	if err != nil {
		return 0, nil, err
	}
	i2, ok := v2.(value.Int)
	if !ok {
		return 0, nil, env.ErrfLine(x.Line(), "array index must be INTEGER")
	}
	i2i := int(i2)
	return int(i1), &i2i, nil
}

// evalArrayType evaluates an ArrType expression to a Type(Array(...))
// value (spec.md §4.4: "ArrType(d1, d2?, inner) — evaluate bounds (Int),
// yield Literal::Type(Array(...))").
func (e *Evaluator) evalArrayType(x *ast.ArrayTypeExpr, fr *env.Env) (value.Value, error) {
	d1, err := e.evalBound(x.D1Start, x.D1End, fr)
	if err != nil {
		return nil, err
	}
	dims := []value.Dim{d1}
	if x.D2Start != nil {
		d2, err := e.evalBound(x.D2Start, x.D2End, fr)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d2)
	}
	innerV, err := e.EvalExpr(x.Inner, fr)
	if err != nil {
		return nil, err
	}
	innerT, ok := innerV.(value.TypeValue)
	if !ok {
		return nil, env.ErrfLine(x.Line(), "ARRAY element type must be a type expression")
	}
	return value.TypeValue{T: value.ArrayType(innerT.T, dims...)}, nil
}

func (e *Evaluator) evalBound(startExpr, endExpr ast.Expr, fr *env.Env) (value.Dim, error) {
	sv, err := e.EvalExpr(startExpr, fr)
	if err != nil {
		return value.Dim{}, err
	}
	start, ok := sv.(value.Int)
	if !ok {
		return value.Dim{}, env.ErrfLine(startExpr.Line(), "ARRAY bound must be INTEGER")
	}
	ev, err := e.EvalExpr(endExpr, fr)
	if err != nil {
		return value.Dim{}, err
	}
	end, ok := ev.(value.Int)
	if !ok {
		return value.Dim{}, env.ErrfLine(endExpr.Line(), "ARRAY bound must be INTEGER")
	}
	return value.Dim{Start: int(start), Len: int(end-start) + 1}, nil
}

func (e *Evaluator) evalUnary(x *ast.UnaryExpr, fr *env.Env) (value.Value, error) {
	rv, err := e.EvalExpr(x.Right, fr)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case token.Not:
		b, ok := rv.(value.Bool)
		if !ok {
			return nil, env.ErrfLine(x.Line(), "NOT requires a BOOLEAN operand")
		}
		return value.Bool(!b), nil
	case token.Minus:
		switch n := rv.(type) {
		case value.Int:
			return -n, nil
		case value.Float:
			return -n, nil
		default:
			return nil, env.ErrfLine(x.Line(), "unary '-' requires a numeric operand")
		}
	default:
		return nil, env.ErrfLine(x.Line(), "unsupported unary operator %s", x.Op)
	}
}

func (e *Evaluator) evalBinary(x *ast.BinaryExpr, fr *env.Env) (value.Value, error) {
	lv, err := e.EvalExpr(x.Left, fr)
	if err != nil {
		return nil, err
	}
	rv, err := e.EvalExpr(x.Right, fr)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case token.Equal:
		return value.Bool(value.Equal(lv, rv)), nil
	case token.NotEqual:
		return value.Bool(!value.Equal(lv, rv)), nil
	case token.And, token.Or:
		return evalLogical(x.Op, lv, rv, x.Line())
	case token.Less, token.Greater, token.LessEqual, token.GreaterEqual:
		return evalComparison(x.Op, lv, rv, x.Line())
	case token.Plus, token.Minus, token.Star, token.Slash:
		return evalArith(x.Op, lv, rv, x.Line())
	case token.Mod, token.Div:
		return evalModDiv(x.Op, lv, rv, x.Line())
	default:
		return nil, env.ErrfLine(x.Line(), "unsupported binary operator %s", x.Op)
	}
}

// evalLogical implements strict (non-short-circuiting) AND/OR (spec.md
// §4.4: "AND, OR: strict boolean (no short-circuit)"). Both operands were
// already evaluated by the caller before this is reached.
func evalLogical(op token.Type, lv, rv value.Value, line int) (value.Value, error) {
	lb, lok := lv.(value.Bool)
	rb, rok := rv.(value.Bool)
	if !lok || !rok {
		return nil, env.ErrfLine(line, "%s requires BOOLEAN operands", op)
	}
	if op == token.And {
		return value.Bool(lb && rb), nil
	}
	return value.Bool(lb || rb), nil
}

// asFloat promotes an Int/Float operand to float32, used to implement
// Int/Float mixed arithmetic and comparison (spec.md §4.4).
func asFloat(v value.Value) (float32, bool) {
	switch n := v.(type) {
	case value.Int:
		return float32(n), true
	case value.Float:
		return float32(n), true
	}
	return 0, false
}

func evalComparison(op token.Type, lv, rv value.Value, line int) (value.Value, error) {
	lf, lok := asFloat(lv)
	rf, rok := asFloat(rv)
	if !lok || !rok {
		return nil, env.ErrfLine(line, "comparison %s requires numeric operands", op)
	}
	switch op {
	case token.Less:
		return value.Bool(lf < rf), nil
	case token.Greater:
		return value.Bool(lf > rf), nil
	case token.LessEqual:
		return value.Bool(lf <= rf), nil
	case token.GreaterEqual:
		return value.Bool(lf >= rf), nil
	}
	panic("unreachable")
}

// evalArith implements + - * / (spec.md §4.4: "Result is Int iff both
// operands are Int and the operator is not /; / always yields Float;
// mixed Int/Float promotes to Float").
func evalArith(op token.Type, lv, rv value.Value, line int) (value.Value, error) {
	li, lIsInt := lv.(value.Int)
	ri, rIsInt := rv.(value.Int)
	if lIsInt && rIsInt && op != token.Slash {
		switch op {
		case token.Plus:
			return li + ri, nil
		case token.Minus:
			return li - ri, nil
		case token.Star:
			return li * ri, nil
		}
	}
	lf, lok := asFloat(lv)
	rf, rok := asFloat(rv)
	if !lok || !rok {
		return nil, env.ErrfLine(line, "arithmetic %s requires numeric operands", op)
	}
	switch op {
	case token.Plus:
		return value.Float(lf + rf), nil
	case token.Minus:
		return value.Float(lf - rf), nil
	case token.Star:
		return value.Float(lf * rf), nil
	case token.Slash:
		return value.Float(lf / rf), nil
	}
	panic("unreachable")
}

// evalModDiv implements MOD/DIV per spec.md §9's given resolution:
// integer remainder and integer quotient, truncating toward zero.
func evalModDiv(op token.Type, lv, rv value.Value, line int) (value.Value, error) {
	li, lok := lv.(value.Int)
	ri, rok := rv.(value.Int)
	if !lok || !rok {
		return nil, env.ErrfLine(line, "%s requires INTEGER operands", op)
	}
	if ri == 0 {
		return nil, env.ErrfLine(line, "division by zero in %s", op)
	}
	if op == token.Mod {
		return li % ri, nil
	}
	return li / ri, nil
}
