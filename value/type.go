/*
File    : camps/value/type.go

Package value defines CAMPS's semantic universe: the finite tagged set of
types (spec.md §3 "Types") and the runtime value sum ("Values — the Literal
sum") that every declaration, expression, and assignment is checked against.
*/
package value

import "fmt"

// Kind tags a Type. CAMPS's type universe is finite and flat except for the
// two composite tags, Ref and Array, which carry an element type.
type Kind string

const (
	KindBool   Kind = "BOOLEAN"
	KindInt    Kind = "INTEGER"
	KindFloat  Kind = "REAL"
	KindChar   Kind = "CHAR"
	KindString Kind = "STRING"
	KindDate   Kind = "DATE"
	KindProc   Kind = "PROC"
	KindFunc   Kind = "FUNC"
	KindType   Kind = "TYPE"
	KindRef    Kind = "REF"
	KindArray  Kind = "ARRAY"

	// KindFileMode tags the READ | WRITE | APPEND | RANDOM literal. These
	// keywords are part of the Literal sum (spec.md §3) but never appear as
	// a declared variable's type, so KindFileMode has no DECLARE-time use.
	KindFileMode Kind = "FILEMODE"
)

// Dim is one array dimension: an inclusive [Start, Start+Len-1] bound.
type Dim struct {
	Start int
	Len   int
}

// Type is a value in CAMPS's type universe. Elem is non-nil only for Ref and
// Array; Dims is non-empty only for Array (one entry for a 1D array, two for
// a 2D array).
type Type struct {
	Kind Kind
	Elem *Type
	Dims []Dim
}

// BoolType, IntType, ... are the atomic types; composite types are built
// with RefType/ArrayType. Named with a Type suffix so they don't collide
// with the Value-sum constructors of the same name in value.go (Bool(true),
// Int(5), ...).
var (
	BoolType   = Type{Kind: KindBool}
	IntType    = Type{Kind: KindInt}
	FloatType  = Type{Kind: KindFloat}
	CharType   = Type{Kind: KindChar}
	StringType = Type{Kind: KindString}
	DateType   = Type{Kind: KindDate}
	ProcType   = Type{Kind: KindProc}
	FuncType   = Type{Kind: KindFunc}
	TypeType   = Type{Kind: KindType}
)

// RefType builds Ref(U).
func RefType(u Type) Type {
	return Type{Kind: KindRef, Elem: &u}
}

// ArrayType builds Array(T, dims...) for one or two dimensions.
func ArrayType(elem Type, dims ...Dim) Type {
	return Type{Kind: KindArray, Elem: &elem, Dims: dims}
}

// Equal reports structural equality between two types, recursing through
// Ref and Array element types and comparing array bounds.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindRef, KindArray:
		if (t.Elem == nil) != (o.Elem == nil) {
			return false
		}
		if t.Elem != nil && !t.Elem.Equal(*o.Elem) {
			return false
		}
		if t.Kind == KindArray {
			if len(t.Dims) != len(o.Dims) {
				return false
			}
			for i := range t.Dims {
				if t.Dims[i] != o.Dims[i] {
					return false
				}
			}
		}
	}
	return true
}

// String renders a type the way CAMPS source spells it, e.g. "INTEGER",
// "ARRAY[1:3] OF INTEGER".
func (t Type) String() string {
	switch t.Kind {
	case KindRef:
		return fmt.Sprintf("REF(%s)", t.Elem.String())
	case KindArray:
		switch len(t.Dims) {
		case 1:
			d := t.Dims[0]
			return fmt.Sprintf("ARRAY[%d:%d] OF %s", d.Start, d.Start+d.Len-1, t.Elem.String())
		case 2:
			d1, d2 := t.Dims[0], t.Dims[1]
			return fmt.Sprintf("ARRAY[%d:%d,%d:%d] OF %s", d1.Start, d1.Start+d1.Len-1, d2.Start, d2.Start+d2.Len-1, t.Elem.String())
		}
	}
	return string(t.Kind)
}

// Len returns the flattened element count of an array type (product of
// dimension lengths). It is 0 for non-array types.
func (t Type) Len() int {
	if t.Kind != KindArray {
		return 0
	}
	n := 1
	for _, d := range t.Dims {
		n *= d.Len
	}
	return n
}
