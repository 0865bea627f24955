/*
File    : camps/env/env_test.go
*/
package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camps-lang/camps/value"
)

func TestDeclareAndGetStack(t *testing.T) {
	e := New(nil)
	e.Declare("x", true, value.IntType)
	v, err := e.GetStack("x")
	require.NoError(t, err)
	assert.Equal(t, value.Int(0), v)
}

func TestGetStackUndeclaredErrors(t *testing.T) {
	e := New(nil)
	_, err := e.GetStack("missing")
	assert.Error(t, err)
}

func TestAssignLocalEnforcesType(t *testing.T) {
	e := New(nil)
	e.Declare("x", true, value.IntType)
	err := e.Assign("x", value.String("nope"))
	assert.Error(t, err)
}

func TestAssignConstantErrors(t *testing.T) {
	e := New(nil)
	e.DeclareValue("pi", false, value.IntType, value.Int(3))
	err := e.Assign("pi", value.Int(4))
	assert.Error(t, err)
}

func TestAssignWalksAncestorChain(t *testing.T) {
	root := New(nil)
	root.Declare("x", true, value.IntType)
	child := New(root)

	require.NoError(t, child.Assign("x", value.Int(42)))
	v, err := root.GetStack("x")
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), v)
}

func TestAssignAutoDeclaresLocallyWhenNoAncestorOwnsIt(t *testing.T) {
	root := New(nil)
	child := New(root)

	require.NoError(t, child.Assign("y", value.Int(7)))
	_, err := root.GetStack("y")
	assert.Error(t, err, "auto-declare happens in the frame that initiated the assign, not the root")

	v, err := child.GetStack("y")
	require.NoError(t, err)
	assert.Equal(t, value.Int(7), v)
}

func TestRefAssignWritesThroughToOwningScope(t *testing.T) {
	caller := New(nil)
	caller.Declare("a", true, value.IntType)
	callee := New(caller)

	box, ok := caller.Box("a")
	require.True(t, ok)
	callee.DeclareValue("p", true, value.RefType(value.IntType), value.Ref{Box: box, Source: "a"})

	require.NoError(t, callee.Assign("p", value.Int(99)))

	v, err := caller.GetStack("a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(99), v)
}

func TestRefAssignWritesThroughTwoLevelsOfForwardedByRef(t *testing.T) {
	outer := New(nil)
	outer.Declare("a", true, value.IntType)

	// middle receives "a" BYREF, then forwards its own parameter BYREF
	// into a further nested call -- Box must resolve all the way back to
	// outer's Box for "a", not stop at middle's own Ref-holding Box.
	middle := New(outer)
	outerBox, ok := outer.Box("a")
	require.True(t, ok)
	middle.DeclareValue("x", true, value.RefType(value.IntType), value.Ref{Box: outerBox, Source: "a"})

	middleBox, ok := middle.Box("x")
	require.True(t, ok)
	inner := New(middle)
	inner.DeclareValue("y", true, value.RefType(value.IntType), value.Ref{Box: middleBox, Source: "x"})

	require.NoError(t, inner.Assign("y", value.Int(10)))

	v, err := outer.GetStack("a")
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), v)
}

func TestArrayIndexAssignAndGet(t *testing.T) {
	e := New(nil)
	e.Declare("arr", true, value.ArrayType(value.IntType, value.Dim{Start: 1, Len: 3}))
	require.NoError(t, e.AssignIdx("arr", 2, nil, value.Int(20)))
	v, err := e.GetIdx("arr", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, value.Int(20), v)
}

func TestArrayIndexOutOfBoundsErrors(t *testing.T) {
	e := New(nil)
	e.Declare("arr", true, value.ArrayType(value.IntType, value.Dim{Start: 1, Len: 3}))
	_, err := e.GetIdx("arr", 99, nil)
	assert.Error(t, err)
}

func TestDefProcAndGetProcWalksChain(t *testing.T) {
	root := New(nil)
	root.DefProc(&Proc{Name: "greet", Params: nil, Body: nil})
	child := New(root)

	p, ok := child.GetProc("greet")
	require.True(t, ok)
	assert.Equal(t, "greet", p.Name)
}

func TestSetRetTakeRetResetRet(t *testing.T) {
	e := New(nil)
	_, ok := e.TakeRet()
	assert.False(t, ok)

	e.SetRet(value.Int(5))
	v, ok := e.TakeRet()
	require.True(t, ok)
	assert.Equal(t, value.Int(5), v)

	e.ResetRet()
	_, ok = e.TakeRet()
	assert.False(t, ok)
}

func TestDelRemovesDeclarationAndValue(t *testing.T) {
	e := New(nil)
	e.Declare("x", true, value.IntType)
	e.Del("x")
	_, err := e.GetStack("x")
	assert.Error(t, err)
}
