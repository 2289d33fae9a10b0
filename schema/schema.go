package schema

import (
	"github.com/jisotalo/iec-61131-3/errors"
)

// DataType is an immutable description of a fixed-size binary layout and its
// encode/decode behavior. A DataType graph is built once, either manually or
// by the resolver, and is then safe to share across concurrent callers.
//
// Layouts are tightly packed: no alignment padding is ever inserted between
// fields, and ByteLength is fixed at construction time.
type DataType interface {
	// Kind returns the closed variant tag of this node.
	Kind() Kind

	// ByteLength returns the number of bytes the node occupies when encoded.
	ByteLength() int

	// Encode converts a value tree into exactly ByteLength bytes.
	// A nil value on STRUCT, UNION and ARRAY nodes yields a zero-length
	// buffer, which callers must treat as "no data" rather than
	// "all-default data".
	Encode(value any) ([]byte, error)

	// Decode converts at least ByteLength bytes back into a value tree.
	// Shorter input is an out_of_bounds error; excess bytes are ignored.
	Decode(data []byte) (any, error)

	// Default returns the zero value tree for this node.
	Default() any
}

// Member is a named child of a STRUCT or UNION.
type Member struct {
	Name string
	Type DataType
}

// checkLen verifies the decode input covers the node's byte length.
func checkLen(data []byte, need int, path []string) error {
	if len(data) < need {
		return errors.OutOfBounds(path, need, len(data))
	}
	return nil
}
