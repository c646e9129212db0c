// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

// Equal reports whether a and b own structurally equal values: the same
// kinds, the same string texts and number values, the same object keys with
// equal members, and the same array elements in the same order. Source
// locations and number radixes are not compared.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.v.(type) {
	case nil:
		return b.v == nil
	case *String:
		y, ok := b.v.(*String)
		return ok && x.text == y.text
	case *Number:
		y, ok := b.v.(*Number)
		return ok && x.value == y.value
	case *Object:
		y, ok := b.v.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for key, m := range x.members {
			if !Equal(m, y.members[key]) {
				return false
			}
		}
		return true
	case *Array:
		y, ok := b.v.(*Array)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, elt := range x.elems {
			if !Equal(elt, y.elems[i]) {
				return false
			}
		}
		return true
	default:
		panic("unknown value type")
	}
}
