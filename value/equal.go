/*
File    : camps/value/equal.go
*/
package value

// Equal implements structural equality over the full Literal universe, used
// by the `=`/`<>` operators and by CASE label matching (spec.md §4.4).
// Ref values compare by their current underlying value, not by identity,
// since a Ref is transparent everywhere except at the point of assignment.
func Equal(a, b Value) bool {
	if ra, ok := a.(Ref); ok {
		a = ra.Box.V
	}
	if rb, ok := b.(Ref); ok {
		b = rb.Box.V
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Float:
			return av == bv
		case Int:
			return av == Float(bv)
		}
		return false
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Date:
		bv, ok := b.(Date)
		return ok && av == bv
	case FileMode:
		bv, ok := b.(FileMode)
		return ok && av == bv
	case TypeValue:
		bv, ok := b.(TypeValue)
		return ok && av.T.Equal(bv.T)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
