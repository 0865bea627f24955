/*
File    : camps/env/env.go

Package env is the environment tree CAMPS programs execute against
(spec.md §4.3): a chain of frames, each owning its own declarations,
values, and defined procedures/functions. Every IF, FOR, WHILE, REPEAT,
and call pushes a child frame; on exit the child is simply dropped, since
Go's pointer-chained Parent already makes ancestor writes visible to the
caller without the teacher's copy-and-merge-back discipline (spec.md §9's
own suggestion for languages with ergonomic shared mutable borrowing;
see scope.Scope, which clones and merges because Rust does not make that
as easy).
*/
package env

import (
	"github.com/camps-lang/camps/ast"
	"github.com/camps-lang/camps/value"
)

// Decl records how a name was declared in some frame: its mutability
// (false for CONSTANT, PROCEDURE, and FUNCTION bindings) and its static
// type, per spec.md §4.3's environment record. Assign consults Decl
// before ever touching the stored value, so a constant or a type
// mismatch is always caught before a write happens.
type Decl struct {
	Mutable bool
	Type    value.Type
}

// ParamSpec is one resolved procedure/function parameter: its name, its
// evaluated type, and whether it is passed BYREF. Unlike ast.Param (whose
// TypeExpr is still unevaluated), a ParamSpec's Type is a value.Type
// ready for the type-compatibility checks call_proc/call_func perform —
// evaluating the type-expr is done once, at PROCEDURE/FUNCTION
// declaration time, not once per call.
type ParamSpec struct {
	Name  string
	Type  value.Type
	ByRef bool
}

// Proc is a registered PROCEDURE: its resolved parameter list and its
// body, ready to run in a fresh child frame whose Parent is the calling
// frame (spec.md §4.3 "Procedure call" step 2 — not the frame PROCEDURE
// was declared in, since CAMPS has no closures over captured locals).
type Proc struct {
	Name   string
	Params []ParamSpec
	Body   *ast.Block
}

// Func is a registered FUNCTION: identical to Proc plus a declared
// return type that call_func checks the RETURN value's type against
// before handing it back to the caller.
type Func struct {
	Name    string
	Params  []ParamSpec
	RetType value.Type
	Body    *ast.Block
}

// Env is one frame of the environment tree (spec.md §4.3). A nil Parent
// marks the root frame, the one the CLI entry point runs the top-level
// Block in; every other frame is created by IF/FOR/WHILE/REPEAT or by a
// procedure/function call and chains back to whichever frame created it.
//
// Fields:
//   - Parent: the enclosing frame, or nil at the root
//   - decls: this frame's own DECLARE/CONSTANT/PROCEDURE/FUNCTION
//     bindings, keyed by name
//   - vals: this frame's own addressable storage, one *value.Box per
//     name in decls
//   - procs, funcs: this frame's own registered callables
//   - retSet, retVal: the pending-return slot RETURN writes and
//     EvalBlock polls (spec.md §4.4's set_ret/get_ret/reset_ret)
type Env struct {
	Parent *Env

	decls map[string]*Decl
	vals  map[string]*value.Box
	procs map[string]*Proc
	funcs map[string]*Func

	retSet bool
	retVal value.Value
}

// New creates a child frame of parent, with its own empty decls/vals/
// procs/funcs maps. Pass nil to create the root frame.
//
// Parameters:
//   - parent: the enclosing frame this one's lookups fall back to, or
//     nil for the root
//
// Returns:
//   - *Env: a freshly allocated, empty frame
//
// Example:
//
//	root := env.New(nil)
//	child := env.New(root) // e.g. an IF's THEN branch
func New(parent *Env) *Env {
	return &Env{
		Parent: parent,
		decls:  make(map[string]*Decl),
		vals:   make(map[string]*value.Box),
		procs:  make(map[string]*Proc),
		funcs:  make(map[string]*Func),
	}
}

// Declare binds name in the current frame with the given mutability and
// type, and stores its zero value immediately. spec.md §4.4 only
// requires eager default-initialization for arrays ("eagerly store a
// default-initialized flat Array"); CAMPS does this for every type so
// that get_stack on a declared-but-not-yet-assigned name returns a
// sensible zero value instead of a spurious "undeclared name" error.
//
// Parameters:
//   - name: the variable's name
//   - mutable: false for CONSTANT; true for every DECLARE
//   - t: the variable's static type
func (e *Env) Declare(name string, mutable bool, t value.Type) {
	e.decls[name] = &Decl{Mutable: mutable, Type: t}
	e.vals[name] = &value.Box{V: value.Default(t)}
}

// DeclareValue binds name in the current frame and stores v directly,
// skipping the Default(t) zero-value step. Used by CONSTANT (whose
// value is known immediately) and by call_proc/call_func when binding
// formal parameters (whose value is the caller's already-evaluated
// argument).
//
// Parameters:
//   - name: the variable's name
//   - mutable: false for CONSTANT and BYVALUE/BYREF formal parameters
//     are always true, per spec.md §4.3 ("parameters are always
//     mutable bindings within the callee")
//   - t: the variable's static type
//   - v: the value to store immediately
func (e *Env) DeclareValue(name string, mutable bool, t value.Type, v value.Value) {
	e.decls[name] = &Decl{Mutable: mutable, Type: t}
	e.vals[name] = &value.Box{V: v}
}

// Box returns the addressable storage cell ultimately backing name,
// walking the frame chain to find it and then, if name itself holds a
// Ref (it was forwarded here BYREF from an outer call), following that
// Ref chain to the Box that actually owns the value (value.Deref).
// Used by call_proc/call_func to build a new BYREF value.Ref for a
// nested call, so writes through the innermost callee's parameter reach
// the original variable directly no matter how many BYREF hops separate
// them — spec.md §4.3's "follow it to the owning scope" applied
// recursively, not a single pointer hop.
//
// Parameters:
//   - name: the variable name, as it appears in the calling frame
//
// Returns:
//   - *value.Box: the ultimate owning cell
//   - bool: false if name is not declared anywhere in the chain
func (e *Env) Box(name string) (*value.Box, bool) {
	b, ok := e.lookupBox(name)
	if !ok {
		return nil, false
	}
	return value.Deref(b), true
}

// isDeclared reports whether name is declared in this frame or any
// ancestor, without resolving to its value. Assign uses this to decide
// whether a write should go to an ancestor's existing binding or
// auto-declare a brand new one locally.
func (e *Env) isDeclared(name string) bool {
	if _, ok := e.decls[name]; ok {
		return true
	}
	if e.Parent != nil {
		return e.Parent.isDeclared(name)
	}
	return false
}

// Assign implements spec.md §4.3's assign(name, value): if name is
// declared in the current frame, write it here (enforcing mutability
// and type compatibility via assignLocal); otherwise delegate up the
// chain to whichever ancestor owns the declaration; if no frame owns
// it, auto-declare it mutably here with the literal's own type (spec.md
// §8's invariant: "assigning to an undeclared name in the root frame
// succeeds and auto-declares it mutably").
//
// Parameters:
//   - name: the target variable's name
//   - v: the value to store
//
// Returns:
//   - error: a constant-reassignment or type-mismatch *RuntimeError, if
//     any
func (e *Env) Assign(name string, v value.Value) error {
	if d, ok := e.decls[name]; ok {
		return e.assignLocal(name, d, v)
	}
	if e.Parent != nil && e.Parent.isDeclared(name) {
		return e.Parent.Assign(name, v)
	}
	t := value.FromLiteral(v)
	e.decls[name] = &Decl{Mutable: true, Type: t}
	e.vals[name] = &value.Box{V: v}
	return nil
}

// assignLocal performs the type-compatibility checks of spec.md §4.3's
// "Type compatibility at assign" for a name already declared in this
// frame:
//  1. reject a write to an immutable (CONSTANT) binding
//  2. for a Ref-typed binding (a BYREF parameter), check the value
//     against the declared element type of the Ref and write through
//     the Ref's Box
//  3. reject a direct write to an Array binding (element assignment
//     must go through AssignIdx instead)
//  4. otherwise require the value's own type to equal the declared type
func (e *Env) assignLocal(name string, d *Decl, v value.Value) error {
	if !d.Mutable {
		return Errf("cannot assign to constant %q", name)
	}
	switch d.Type.Kind {
	case value.KindRef:
		box := e.vals[name]
		ref, ok := box.V.(value.Ref)
		if !ok {
			return Errf("%q is not bound to a reference", name)
		}
		u := *d.Type.Elem
		if !value.FromLiteral(v).Equal(u) {
			return Errf("type mismatch assigning to %q: expected %s, got %s", name, u, value.FromLiteral(v))
		}
		ref.Box.V = v
		return nil
	case value.KindArray:
		return Errf("cannot assign directly to array %q; assign to an element instead", name)
	default:
		if !value.FromLiteral(v).Equal(d.Type) {
			return Errf("type mismatch assigning to %q: expected %s, got %s", name, d.Type, value.FromLiteral(v))
		}
		e.vals[name].V = v
		return nil
	}
}

// lookupBox walks the frame chain for the Box backing name, checking
// this frame's own vals map before falling back to Parent. It does not
// follow a Ref chain (see Box, which layers that on top); callers that
// need the ultimate owning cell should call Box instead.
func (e *Env) lookupBox(name string) (*value.Box, bool) {
	if b, ok := e.vals[name]; ok {
		return b, true
	}
	if e.Parent != nil {
		return e.Parent.lookupBox(name)
	}
	return nil, false
}

// GetStack implements spec.md §4.3's get_stack(name): look up the value
// walking the frame chain, dereferencing one level of Ref so callers
// always see the underlying value rather than the indirection record.
// A single level suffices because Box (used to build every Ref) already
// collapses multi-hop BYREF chains down to one Box at bind time.
//
// Parameters:
//   - name: the variable name to read
//
// Returns:
//   - value.Value: the current value
//   - error: an "undeclared name" *RuntimeError if name is not bound
//     anywhere in the chain
func (e *Env) GetStack(name string) (value.Value, error) {
	box, ok := e.lookupBox(name)
	if !ok {
		return nil, Errf("undeclared name %q", name)
	}
	if ref, ok := box.V.(value.Ref); ok {
		return ref.Box.V, nil
	}
	return box.V, nil
}

// AssignIdx implements element assignment through array index
// expressions (spec.md §4.3: "element assignment goes through
// assign_idx ... which flattens multi-dim indices"). i2 is nil for a 1D
// index.
//
// Parameters:
//   - name: the array variable's name
//   - i1, i2: the one or two index values already evaluated by the
//     caller; i2 nil selects AssignIdx's 1D form
//   - v: the element value to store
//
// Returns:
//   - error: undeclared name, not-an-array, type mismatch, or
//     out-of-bounds, whichever applies first
func (e *Env) AssignIdx(name string, i1 int, i2 *int, v value.Value) error {
	box, ok := e.lookupBox(name)
	if !ok {
		return Errf("undeclared name %q", name)
	}
	arr, ok := box.V.(*value.Array)
	if !ok {
		return Errf("%q is not an array", name)
	}
	if !value.FromLiteral(v).Equal(arr.ElemT) {
		return Errf("type mismatch assigning into %q: expected %s, got %s", name, arr.ElemT, value.FromLiteral(v))
	}
	idx, ok := arr.Index(i1, i2)
	if !ok {
		if i2 != nil {
			return Errf("index [%d,%d] out of bounds for %q, declared %s", i1, *i2, name, arr.Type())
		}
		return Errf("index [%d] out of bounds for %q, declared %s", i1, name, arr.Type())
	}
	arr.Elems[idx] = v
	return nil
}

// GetIdx reads an array element, mirroring AssignIdx's bounds handling
// and error cases but without the type-compatibility check (a read
// can't violate it).
func (e *Env) GetIdx(name string, i1 int, i2 *int) (value.Value, error) {
	box, ok := e.lookupBox(name)
	if !ok {
		return nil, Errf("undeclared name %q", name)
	}
	arr, ok := box.V.(*value.Array)
	if !ok {
		return nil, Errf("%q is not an array", name)
	}
	idx, ok := arr.Index(i1, i2)
	if !ok {
		if i2 != nil {
			return nil, Errf("index [%d,%d] out of bounds for %q, declared %s", i1, *i2, name, arr.Type())
		}
		return nil, Errf("index [%d] out of bounds for %q, declared %s", i1, name, arr.Type())
	}
	return arr.Elems[idx], nil
}

// DefProc implements spec.md §4.3's def_proc: declares name with type
// Proc in the current frame (so it shadows like any other binding) and
// registers the callable body for call_proc to look up later.
func (e *Env) DefProc(p *Proc) {
	e.decls[p.Name] = &Decl{Mutable: false, Type: value.ProcType}
	e.procs[p.Name] = p
}

// DefFunc implements spec.md §4.3's def_func: declares name with type
// Func in the current frame and registers the callable.
func (e *Env) DefFunc(f *Func) {
	e.decls[f.Name] = &Decl{Mutable: false, Type: value.FuncType}
	e.funcs[f.Name] = f
}

// GetProc looks up a registered procedure by name, walking the frame
// chain the same way lookupBox does.
func (e *Env) GetProc(name string) (*Proc, bool) {
	if p, ok := e.procs[name]; ok {
		return p, true
	}
	if e.Parent != nil {
		return e.Parent.GetProc(name)
	}
	return nil, false
}

// GetFunc looks up a registered function by name, walking the frame
// chain.
func (e *Env) GetFunc(name string) (*Func, bool) {
	if f, ok := e.funcs[name]; ok {
		return f, true
	}
	if e.Parent != nil {
		return e.Parent.GetFunc(name)
	}
	return nil, false
}

// Del implements spec.md §4.3's del(name): remove both the declaration
// and the stored value from the current frame only — it never reaches
// into an ancestor, unlike Assign.
func (e *Env) Del(name string) {
	delete(e.decls, name)
	delete(e.vals, name)
}

// SetRet implements set_ret(v): writes the pending return slot of the
// current frame. Each control construct's bodyReturn (see eval/control.go)
// copies a child frame's pending return to its own parent right after
// this is called, so a RETURN nested several constructs deep still
// reaches the enclosing call frame one hop at a time.
func (e *Env) SetRet(v value.Value) {
	e.retVal = v
	e.retSet = true
}

// TakeRet reads the pending return slot without clearing it; ok is false
// if no RETURN has executed in this frame yet.
func (e *Env) TakeRet() (v value.Value, ok bool) {
	return e.retVal, e.retSet
}

// ResetRet implements reset_ret(): clears the pending return slot of the
// current frame. Unused by the evaluator today (a frame is dropped, not
// reused, once it has returned) but kept as the direct counterpart to
// SetRet/TakeRet that spec.md §4.3 names.
func (e *Env) ResetRet() {
	e.retVal = nil
	e.retSet = false
}
