/*
File    : camps/eval/eval.go

Package eval is the tree-walking evaluator (spec.md §4.4): it executes an
*ast.Block against an *env.Env, dispatching on AST node type the way the
teacher's Evaluator.Eval does (eval/evaluator_expressions.go), except each
method returns (value.Value, error) / error instead of threading a special
Error object back through the return value.
*/
package eval

import (
	"io"
	"os"

	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/value"
)

// RuntimeError is the runtime-tier error CAMPS raises (spec.md §7). Defined
// in env (see env/error.go) to avoid an import cycle between env and
// eval; aliased here under the name SPEC_FULL.md documents it with.
type RuntimeError = env.RuntimeError

// LineReader is the abstraction INPUT reads through. cmd/camps supplies a
// chzyer/readline-backed implementation when stdin is a terminal and a
// plain bufio.Scanner-backed one otherwise (spec.md §6; SPEC_FULL.md
// "Domain stack").
type LineReader interface {
	ReadLine() (string, error)
}

// Evaluator holds the state one evaluation run needs: the root frame,
// and the I/O streams INPUT/OUTPUT read and write (spec.md §5: "the only
// shared resources are standard input/output, both used from a single
// call site").
type Evaluator struct {
	Root *env.Env
	Out  io.Writer
	In   LineReader
}

// New creates an Evaluator with a fresh root frame, defaulting Out to
// os.Stdout. Callers needing INPUT must still set In.
func New() *Evaluator {
	return &Evaluator{
		Root: env.New(nil),
		Out:  os.Stdout,
	}
}

// Run evaluates a parsed program's top-level Block in the root frame.
func (e *Evaluator) Run(prog *ast.Block) error {
	return e.EvalBlock(prog, e.Root)
}

// EvalBlock evaluates each statement of a Block in order (spec.md §4.4:
// "Block(list) — evaluate each statement in order"), stopping at the
// first error or RETURN.
func (e *Evaluator) EvalBlock(blk *ast.Block, fr *env.Env) error {
	for _, stmt := range blk.Stmts {
		if err := e.EvalStmt(stmt, fr); err != nil {
			return err
		}
		if _, ok := fr.TakeRet(); ok {
			return nil
		}
	}
	return nil
}

// EvalStmt dispatches one statement to its handler, mirroring the
// teacher's type-switch in Eval (eval/evaluator_expressions.go) but keyed
// on ast.Stmt's concrete types instead of parser.Node's.
func (e *Evaluator) EvalStmt(stmt ast.Stmt, fr *env.Env) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := e.EvalExpr(s.Expr, fr)
		return err

	case *ast.DeclareStmt:
		return e.evalDeclare(s, fr)

	case *ast.ConstantStmt:
		return e.evalConstant(s, fr)

	case *ast.AssignStmt:
		return e.evalAssign(s, fr)

	case *ast.ProcCallStmt:
		_, err := e.callProcStmt(s, fr)
		return err

	case *ast.InputStmt:
		return e.evalInput(s, fr)

	case *ast.OutputStmt:
		return e.evalOutput(s, fr)

	case *ast.ReturnStmt:
		v, err := e.EvalExpr(s.Expr, fr)
		if err != nil {
			return err
		}
		fr.SetRet(v)
		return nil

	case *ast.ProcDeclStmt:
		return e.evalProcDecl(s, fr)

	case *ast.FuncDeclStmt:
		return e.evalFuncDecl(s, fr)

	case *ast.ForStmt:
		return e.evalFor(s, fr)

	case *ast.IfStmt:
		return e.evalIf(s, fr)

	case *ast.CaseStmt:
		return e.evalCase(s, fr)

	case *ast.RepeatStmt:
		return e.evalRepeat(s, fr)

	case *ast.WhileStmt:
		return e.evalWhile(s, fr)

	case *ast.UnsupportedStmt:
		// File-I/O and TYPE blocks are parsed but inert (spec.md §1
		// Non-goals; DESIGN.md).
		return nil

	default:
		return env.Errf("cannot evaluate statement of type %T", stmt)
	}
}

func (e *Evaluator) evalDeclare(s *ast.DeclareStmt, fr *env.Env) error {
	tv, err := e.EvalExpr(s.TypeExpr, fr)
	if err != nil {
		return err
	}
	t, ok := tv.(value.TypeValue)
	if !ok {
		return env.Errf("DECLARE %s: expected a type expression", s.Name)
	}
	fr.Declare(s.Name, true, t.T)
	return nil
}

func (e *Evaluator) evalConstant(s *ast.ConstantStmt, fr *env.Env) error {
	v, err := e.EvalExpr(s.Expr, fr)
	if err != nil {
		return err
	}
	fr.DeclareValue(s.Name, false, value.FromLiteral(v), v)
	return nil
}

func (e *Evaluator) evalAssign(s *ast.AssignStmt, fr *env.Env) error {
	v, err := e.EvalExpr(s.Rhs, fr)
	if err != nil {
		return err
	}
	switch lhs := s.Lhs.(type) {
	case *ast.IdentExpr:
		return fr.Assign(lhs.Name, v)
	case *ast.IndexExpr:
		i1, i2, err := e.evalIndices(lhs, fr)
		if err != nil {
			return err
		}
		return fr.AssignIdx(lhs.Name, i1, i2, v)
	default:
		return env.Errf("left-hand side of assignment must be a name or array element")
	}
}
