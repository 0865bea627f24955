/*
File    : camps/eval/control.go

Control-flow statement semantics (spec.md §4.4). Each of IF/FOR/WHILE/
REPEAT allocates one child frame for its controlled block, per the
frame-merge discipline of spec.md §5: ancestor writes are visible through
Go's shared *env.Env pointer (no snapshot/copy-back needed, see env.Env's
doc comment), but a RETURN executed deep in the child must still be
bubbled up one level at a time so the enclosing EvalBlock notices it —
bodyReturn does that bubbling.
*/
package eval

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/value"
)

// bodyReturn propagates a child frame's pending RETURN to its parent, so
// that the enclosing EvalBlock's own TakeRet check (which only looks at
// its own frame) sees it too. Every construct below that runs its body in
// a child frame (FOR, IF, REPEAT, WHILE) calls this right after running
// its body; CASE runs its arm in the current frame and needs no bubbling.
func bodyReturn(child, parent *env.Env) {
	if v, ok := child.TakeRet(); ok {
		parent.SetRet(v)
	}
}

func (e *Evaluator) evalFor(s *ast.ForStmt, fr *env.Env) error {
	startV, err := e.EvalExpr(s.Start, fr)
	if err != nil {
		return err
	}
	start, ok := startV.(value.Int)
	if !ok {
		return env.Errf("FOR: start value must be INTEGER")
	}
	endV, err := e.EvalExpr(s.End, fr)
	if err != nil {
		return err
	}
	end, ok := endV.(value.Int)
	if !ok {
		return env.Errf("FOR: end value must be INTEGER")
	}
	step := value.Int(1)
	if s.Step != nil {
		stepV, err := e.EvalExpr(s.Step, fr)
		if err != nil {
			return err
		}
		step, ok = stepV.(value.Int)
		if !ok {
			return env.Errf("FOR: STEP value must be INTEGER")
		}
	}

	child := env.New(fr)
	child.DeclareValue(s.Var, true, value.IntType, start)

	for {
		if err := e.EvalBlock(s.Body, child); err != nil {
			return err
		}
		bodyReturn(child, fr)
		if _, ok := fr.TakeRet(); ok {
			return nil
		}
		curV, err := child.GetStack(s.Var)
		if err != nil {
			return err
		}
		next := curV.(value.Int) + step
		// spec.md §4.4: "termination uses strict >" even for a negative
		// STEP: with a negative STEP, a loop whose start is above its end
		// runs its body once and stops, and one whose start is at or below
		// its end never stops; see spec.md §9's open question on
		// negative-STEP behavior.
		if next > end {
			break
		}
		if err := child.Assign(s.Var, next); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalIf(s *ast.IfStmt, fr *env.Env) error {
	condV, err := e.EvalExpr(s.Cond, fr)
	if err != nil {
		return err
	}
	cond, ok := condV.(value.Bool)
	if !ok {
		return env.Errf("IF: condition must be BOOLEAN")
	}

	child := env.New(fr)
	switch {
	case bool(cond):
		if err := e.EvalBlock(s.Then, child); err != nil {
			return err
		}
	case s.Else != nil:
		if err := e.EvalBlock(s.Else, child); err != nil {
			return err
		}
	default:
		return nil
	}
	bodyReturn(child, fr)
	return nil
}

func (e *Evaluator) evalCase(s *ast.CaseStmt, fr *env.Env) error {
	subjV, err := e.EvalExpr(s.Subject, fr)
	if err != nil {
		return err
	}
	for _, arm := range s.Arms {
		labelV, err := e.EvalExpr(arm.Label, fr)
		if err != nil {
			return err
		}
		if value.Equal(subjV, labelV) {
			return e.EvalStmt(arm.Stmt, fr)
		}
	}
	if s.Otherwise != nil {
		return e.EvalStmt(s.Otherwise, fr)
	}
	return nil
}

func (e *Evaluator) evalRepeat(s *ast.RepeatStmt, fr *env.Env) error {
	child := env.New(fr)
	for {
		if err := e.EvalBlock(s.Body, child); err != nil {
			return err
		}
		bodyReturn(child, fr)
		if _, ok := fr.TakeRet(); ok {
			return nil
		}
		condV, err := e.EvalExpr(s.Cond, child)
		if err != nil {
			return err
		}
		cond, ok := condV.(value.Bool)
		if !ok {
			return env.Errf("REPEAT: UNTIL condition must be BOOLEAN")
		}
		// spec.md §4.4: "stop when FALSE" — the source's actual polarity,
		// kept literally per spec.md §9's instruction not to guess intent
		// on the REPEAT/UNTIL bug.
		if !bool(cond) {
			break
		}
	}
	return nil
}

func (e *Evaluator) evalWhile(s *ast.WhileStmt, fr *env.Env) error {
	child := env.New(fr)
	for {
		condV, err := e.EvalExpr(s.Cond, child)
		if err != nil {
			return err
		}
		cond, ok := condV.(value.Bool)
		if !ok {
			return env.Errf("WHILE: condition must be BOOLEAN")
		}
		if !bool(cond) {
			break
		}
		if err := e.EvalBlock(s.Body, child); err != nil {
			return err
		}
		bodyReturn(child, fr)
		if _, ok := fr.TakeRet(); ok {
			return nil
		}
	}
	return nil
}
