package schema

import "iter"

// Field is one entry of a memory-order traversal: a reachable field with
// its absolute byte offset from the traversal root.
type Field struct {
	Name   string
	Type   DataType
	Offset int
}

// Fields traverses the schema's named fields in buffer-offset order.
// Nested STRUCT and UNION members are entered (their fields appear with
// dotted path names); ARRAY-typed fields are yielded as single units
// without expanding their contents. The sequence is lazy and restartable;
// the schema is never mutated.
func Fields(dt DataType) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		walkFields(dt, "", 0, false, yield)
	}
}

// Elements traverses like Fields but expands every ARRAY field into one
// entry per element, with a bracketed index suffix per dimension.
// Arrays of arrays and arrays of structs expand fully.
func Elements(dt DataType) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		walkFields(dt, "", 0, true, yield)
	}
}

func walkFields(dt DataType, name string, offset int, expand bool, yield func(Field) bool) bool {
	switch t := dt.(type) {
	case *Struct:
		for _, m := range t.Members() {
			if !walkFields(m.Type, joinPath(name, m.Name), offset, expand, yield) {
				return false
			}
			offset += m.Type.ByteLength()
		}
		return true

	case *Union:
		for _, m := range t.Members() {
			// overlapping storage: every member starts at the union offset
			if !walkFields(m.Type, joinPath(name, m.Name), offset, expand, yield) {
				return false
			}
		}
		return true

	case *Array:
		if !expand {
			return yield(Field{Name: name, Type: t, Offset: offset})
		}
		return walkElements(t, name, offset, yield)

	default:
		return yield(Field{Name: name, Type: dt, Offset: offset})
	}
}

func walkElements(a *Array, name string, offset int, yield func(Field) bool) bool {
	dims := a.Dimensions()
	elem := a.Element()
	idx := make([]int, len(dims))
	for {
		elemName := name
		for _, i := range idx {
			elemName += indexName(i)
		}
		if !walkFields(elem, elemName, offset, true, yield) {
			return false
		}
		offset += elem.ByteLength()

		// advance the index vector, last dimension fastest
		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < dims[d] {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return true
		}
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
