package schema

import (
	"github.com/jisotalo/iec-61131-3/errors"
)

// Union is an ordered sequence of named members that all share offset 0.
// Its byte length is the largest member's byte length.
type Union struct {
	members    []Member
	byteLength int
}

// NewUnion builds a union node. Member names must be unique and every
// member must carry a valid schema node.
func NewUnion(members []Member) (*Union, error) {
	max := 0
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.Type == nil {
			return nil, errors.InvalidStructMember([]string{m.Name}, "member has no data type (parametrized type not instantiated?)")
		}
		if m.Name == "" {
			return nil, errors.InvalidStructMember(nil, "member has no name")
		}
		if _, dup := seen[m.Name]; dup {
			return nil, errors.InvalidStructMember([]string{m.Name}, "duplicate member name")
		}
		seen[m.Name] = struct{}{}
		if m.Type.ByteLength() > max {
			max = m.Type.ByteLength()
		}
	}
	return &Union{members: members, byteLength: max}, nil
}

func (u *Union) Kind() Kind        { return KindUnion }
func (u *Union) ByteLength() int   { return u.byteLength }
func (u *Union) Members() []Member { return u.members }

// Encode writes into overlapping storage: of the keys present in the input
// with a defined value, the last one in declared order wins. A nil input
// returns a zero-length buffer.
func (u *Union) Encode(value any) ([]byte, error) {
	if value == nil {
		return []byte{}, nil
	}
	values, ok := value.(map[string]any)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as union")
	}

	buf := make([]byte, u.byteLength)
	for _, m := range u.members {
		v, present := values[m.Name]
		if !present || v == nil {
			continue
		}
		raw, err := m.Type.Encode(v)
		if err != nil {
			return nil, prependPath(err, m.Name)
		}
		for i := range buf {
			buf[i] = 0
		}
		copy(buf, raw)
	}
	return buf, nil
}

// Decode interprets the same byte region through every member's codec and
// returns all interpretations; the caller chooses which is meaningful.
func (u *Union) Decode(data []byte) (any, error) {
	if err := checkLen(data, u.byteLength, nil); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(u.members))
	for _, m := range u.members {
		v, err := m.Type.Decode(data[:m.Type.ByteLength()])
		if err != nil {
			return nil, prependPath(err, m.Name)
		}
		values[m.Name] = v
	}
	return values, nil
}

// Default recursively defaults every member.
func (u *Union) Default() any {
	values := make(map[string]any, len(u.members))
	for _, m := range u.members {
		values[m.Name] = m.Type.Default()
	}
	return values
}
