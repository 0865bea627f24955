/*
File    : camps/eval/io.go

INPUT/OUTPUT (spec.md §4.4, §6). OUTPUT writes straight to e.Out with no
decoration — machine-readable program output must stay distinct from the
CLI's own colorized diagnostics, which cmd/camps applies separately (see
SPEC_FULL.md "Logging / diagnostics").
*/
package eval

import (
	"fmt"

	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/value"
)

// evalOutput implements spec.md §4.4's Output(exprs): evaluate each and
// write its canonical string form with no separator, then a trailing
// newline (spec.md §6: "separates its expressions with no separator").
func (e *Evaluator) evalOutput(s *ast.OutputStmt, fr *env.Env) error {
	for _, expr := range s.Exprs {
		v, err := e.EvalExpr(expr, fr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(e.Out, v.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.Out)
	return err
}

// evalInput implements spec.md §4.4's Input(IdentExpr(n)): read one line
// from standard input, strip the trailing newline, and assign it as a
// String (spec.md §6).
func (e *Evaluator) evalInput(s *ast.InputStmt, fr *env.Env) error {
	id, ok := s.Target.(*ast.IdentExpr)
	if !ok {
		return env.Errf("INPUT target must be an identifier")
	}
	if e.In == nil {
		return env.Errf("INPUT: no input source configured")
	}
	line, err := e.In.ReadLine()
	if err != nil {
		return env.Errf("INPUT: %s", err)
	}
	return fr.Assign(id.Name, value.String(line))
}
