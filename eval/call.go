/*
File    : camps/eval/call.go

Procedure/function declaration and invocation (spec.md §4.3 "Procedure
call" / "Function call", §4.4 "Procedure(...)/Function(...)").
*/
package eval

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/value"
)

// paramSpecs evaluates each formal parameter's type-expr, turning
// ast.Param (still unresolved) into env.ParamSpec (spec.md §4.4:
// "Procedure(name, args, body) ... — evaluate each parameter type-expr").
func (e *Evaluator) paramSpecs(params []ast.Param, fr *env.Env) ([]env.ParamSpec, error) {
	specs := make([]env.ParamSpec, len(params))
	for i, p := range params {
		tv, err := e.EvalExpr(p.TypeExpr, fr)
		if err != nil {
			return nil, err
		}
		t, ok := tv.(value.TypeValue)
		if !ok {
			return nil, env.Errf("parameter %q: expected a type expression", p.Name)
		}
		specs[i] = env.ParamSpec{Name: p.Name, Type: t.T, ByRef: p.ByRef}
	}
	return specs, nil
}

func (e *Evaluator) evalProcDecl(s *ast.ProcDeclStmt, fr *env.Env) error {
	specs, err := e.paramSpecs(s.Params, fr)
	if err != nil {
		return err
	}
	fr.DefProc(&env.Proc{Name: s.Name, Params: specs, Body: s.Body})
	return nil
}

func (e *Evaluator) evalFuncDecl(s *ast.FuncDeclStmt, fr *env.Env) error {
	specs, err := e.paramSpecs(s.Params, fr)
	if err != nil {
		return err
	}
	rv, err := e.EvalExpr(s.RetType, fr)
	if err != nil {
		return err
	}
	rt, ok := rv.(value.TypeValue)
	if !ok {
		return env.Errf("FUNCTION %s: RETURNS must be a type expression", s.Name)
	}
	fr.DefFunc(&env.Func{Name: s.Name, Params: specs, RetType: rt.T, Body: s.Body})
	return nil
}

// argValue is one evaluated actual argument: the identifier it came from
// (empty if the actual was not a bare identifier) and its value (spec.md
// §4.4: "evaluate each arg to a (origin-name-if-identifier-else-"",
// value) pair").
type argValue struct {
	origin string
	val    value.Value
}

func (e *Evaluator) evalArgs(args []ast.Expr, fr *env.Env) ([]argValue, error) {
	out := make([]argValue, len(args))
	for i, a := range args {
		v, err := e.EvalExpr(a, fr)
		if err != nil {
			return nil, err
		}
		origin := ""
		if id, ok := a.(*ast.IdentExpr); ok {
			origin = id.Name
		}
		out[i] = argValue{origin: origin, val: v}
	}
	return out, nil
}

// bindParams creates the callee frame and binds each formal to its
// actual, enforcing arity and type compatibility and wiring BYREF
// parameters to a shared value.Box (spec.md §4.3 steps 1-3).
func (e *Evaluator) bindParams(params []env.ParamSpec, args []argValue, caller *env.Env) (*env.Env, error) {
	if len(params) != len(args) {
		return nil, env.Errf("wrong number of arguments: expected %d, got %d", len(params), len(args))
	}
	callee := env.New(caller)
	for i, p := range params {
		a := args[i]
		if !value.FromLiteral(a.val).Equal(p.Type) {
			return nil, env.Errf("argument %q: expected %s, got %s", p.Name, p.Type, value.FromLiteral(a.val))
		}
		if p.ByRef {
			if a.origin == "" {
				return nil, env.Errf("argument %q is BYREF and must be a variable", p.Name)
			}
			box, ok := caller.Box(a.origin)
			if !ok {
				return nil, env.Errf("undeclared name %q", a.origin)
			}
			callee.DeclareValue(p.Name, true, value.RefType(p.Type), value.Ref{Box: box, Source: a.origin})
		} else {
			callee.DeclareValue(p.Name, true, p.Type, a.val)
		}
	}
	return callee, nil
}

// callProcStmt implements call_proc (spec.md §4.3): resolve, bind, run,
// and (per §9's design note) rely on the shared pointer chain instead of
// the teacher's snapshot-and-merge-back to propagate BYREF writes.
func (e *Evaluator) callProcStmt(s *ast.ProcCallStmt, fr *env.Env) (value.Value, error) {
	p, ok := fr.GetProc(s.Name)
	if !ok {
		return nil, env.ErrfLine(s.Ln, "undeclared procedure %q", s.Name)
	}
	args, err := e.evalArgs(s.Args, fr)
	if err != nil {
		return nil, err
	}
	callee, err := e.bindParams(p.Params, args, fr)
	if err != nil {
		return nil, err
	}
	if err := e.EvalBlock(p.Body, callee); err != nil {
		return nil, err
	}
	return nil, nil
}

// callFuncExpr implements call_func (spec.md §4.3): identical to
// call_proc except the callee's ret slot must hold a value whose type
// equals the declared return type.
func (e *Evaluator) callFuncExpr(x *ast.CallExpr, fr *env.Env) (value.Value, error) {
	f, ok := fr.GetFunc(x.Name)
	if !ok {
		return nil, env.ErrfLine(x.Ln, "undeclared function %q", x.Name)
	}
	args, err := e.evalArgs(x.Args, fr)
	if err != nil {
		return nil, err
	}
	callee, err := e.bindParams(f.Params, args, fr)
	if err != nil {
		return nil, err
	}
	if err := e.EvalBlock(f.Body, callee); err != nil {
		return nil, err
	}
	ret, ok := callee.TakeRet()
	if !ok {
		return nil, env.ErrfLine(x.Ln, "function %q did not RETURN a value", x.Name)
	}
	if !value.FromLiteral(ret).Equal(f.RetType) {
		return nil, env.ErrfLine(x.Ln, "function %q: expected return type %s, got %s", x.Name, f.RetType, value.FromLiteral(ret))
	}
	return ret, nil
}
