package schema

import (
	"github.com/jisotalo/iec-61131-3/errors"
)

// Struct is an ordered sequence of named members laid out back to back with
// no padding. Member order is semantically meaningful: it fixes the buffer
// offset of every member.
type Struct struct {
	members    []Member
	byteLength int
}

// NewStruct builds a struct node. Member names must be unique and every
// member must carry a valid schema node.
func NewStruct(members []Member) (*Struct, error) {
	total := 0
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
		total += m.Type.ByteLength()
	}
	return &Struct{members: members, byteLength: total}, nil
}

func (s *Struct) Kind() Kind        { return KindStruct }
func (s *Struct) ByteLength() int   { return s.byteLength }
func (s *Struct) Members() []Member { return s.members }

// Encode lays the members out in declared order. A nil input returns a
// zero-length buffer. Members absent from the map, or present with an
// explicit nil, encode their default.
func (s *Struct) Encode(value any) ([]byte, error) {
	if value == nil {
		return []byte{}, nil
	}
	values, ok := value.(map[string]any)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as struct")
	}

	buf := make([]byte, 0, s.byteLength)
	for _, m := range s.members {
		v := values[m.Name]
		if v == nil {
			v = m.Type.Default()
		}
		raw, err := m.Type.Encode(v)
		if err != nil {
			return nil, prependPath(err, m.Name)
		}
		buf = append(buf, raw...)
	}
	return buf, nil
}

// Decode slices the buffer into per-member regions by cumulative offset.
func (s *Struct) Decode(data []byte) (any, error) {
	if err := checkLen(data, s.byteLength, nil); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(s.members))
	offset := 0
	for _, m := range s.members {
		v, err := m.Type.Decode(data[offset : offset+m.Type.ByteLength()])
		if err != nil {
			return nil, prependPath(err, m.Name)
		}
		values[m.Name] = v
		offset += m.Type.ByteLength()
	}
	return values, nil
}

// Default recursively defaults every member.
func (s *Struct) Default() any {
	values := make(map[string]any, len(s.members))
	for _, m := range s.members {
		values[m.Name] = m.Type.Default()
	}
	return values
}

// prependPath pushes a member name onto a structured error's field path so
// nested failures report their full location.
func prependPath(err error, name string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append([]string{name}, e.Path...)
		return e
	}
	return err
}
