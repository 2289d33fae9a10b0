package schema

import (
	"strings"

	"github.com/jisotalo/iec-61131-3/errors"
)

// EnumMember is a declared name/value definition of an enum.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumValue is the decoded form of an enum: the raw numeric value plus the
// declared name it matched, if any. An empty Name means the value is not in
// the declared set, which is valid data (e.g. uninitialized hardware state).
//
// Value carries the backing primitive's bit pattern: decoding is lossless
// for every backing width, and for an unsigned 64-bit backing a value at or
// above 1<<63 is recovered with uint64(Value).
type EnumValue struct {
	Name  string
	Value int64
}

// Enum stores a numeric value through a backing integer primitive and maps
// it to declared member names. Values need not be contiguous or unique; the
// first declared match wins on decode.
type Enum struct {
	members []EnumMember
	backing *Primitive
}

// NewEnum builds an enum node. A nil backing defaults to a signed 16-bit
// integer. Member names must be unique; values may repeat.
func NewEnum(members []EnumMember, backing *Primitive) (*Enum, error) {
	if backing == nil {
		backing = MustPrimitive(KindS16)
	}
	if !backing.Kind().IsInteger() {
		return nil, errors.InvalidInput(errors.PhaseResolve, nil, "enum backing type must be an integer, got "+backing.Kind().String())
	}
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		key := strings.ToLower(m.Name)
		if _, dup := seen[key]; dup {
			return nil, errors.InvalidInput(errors.PhaseResolve, []string{m.Name}, "duplicate enum member name")
		}
		seen[key] = struct{}{}
	}
	return &Enum{members: members, backing: backing}, nil
}

func (e *Enum) Kind() Kind            { return KindEnum }
func (e *Enum) ByteLength() int       { return e.backing.ByteLength() }
func (e *Enum) Members() []EnumMember { return e.members }
func (e *Enum) Backing() *Primitive   { return e.backing }

// Encode accepts a member name (matched case-insensitively), a raw number,
// or an EnumValue / name-value map. Numeric input encodes directly without
// membership validation; a symbolic name that matches nothing is an error.
func (e *Enum) Encode(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return e.backing.Encode(e.Default().(EnumValue).Value)

	case string:
		m, ok := e.lookupName(v)
		if !ok {
			return nil, errors.UnknownEnumMember(nil, v, e.memberNames())
		}
		return e.backing.Encode(m.Value)

	case EnumValue:
		return e.backing.Encode(v.Value)

	case *EnumValue:
		if v == nil {
			return nil, errors.InvalidEnumInput(nil, value)
		}
		return e.backing.Encode(v.Value)

	case map[string]any:
		if raw, ok := v["value"]; ok {
			if _, numeric := numericBits(raw); numeric {
				return e.backing.Encode(raw)
			}
			return nil, errors.InvalidEnumInput(nil, raw)
		}
		if raw, ok := v["name"]; ok {
			if name, ok := raw.(string); ok {
				return e.Encode(name)
			}
			return nil, errors.InvalidEnumInput(nil, raw)
		}
		return nil, errors.InvalidEnumInput(nil, value)

	default:
		if _, numeric := numericBits(value); numeric {
			return e.backing.Encode(value)
		}
		return nil, errors.InvalidEnumInput(nil, value)
	}
}

// Decode reads the backing primitive and reports the first declared member
// with that value. Unknown values decode losslessly with an empty name.
// Values compare as bit patterns at the backing's width, so an unsigned
// 64-bit reading never collapses onto a declared member it does not match.
func (e *Enum) Decode(data []byte) (any, error) {
	raw, err := e.backing.Decode(data)
	if err != nil {
		return nil, err
	}
	bits, _ := numericBits(raw)
	mask := e.widthMask()
	for _, m := range e.members {
		if uint64(m.Value)&mask == bits&mask {
			return EnumValue{Name: m.Name, Value: int64(bits)}, nil
		}
	}
	return EnumValue{Value: int64(bits)}, nil
}

// widthMask covers exactly the backing primitive's bits, so declared values
// and decoded values compare equal regardless of sign extension.
func (e *Enum) widthMask() uint64 {
	return ^uint64(0) >> (64 - 8*uint(e.backing.ByteLength()))
}

// Default returns the first declared member, or the backing primitive's
// zero value with an undefined name when no members are declared.
func (e *Enum) Default() any {
	if len(e.members) > 0 {
		return EnumValue{Name: e.members[0].Name, Value: e.members[0].Value}
	}
	bits, _ := numericBits(e.backing.Default())
	return EnumValue{Value: int64(bits)}
}

func (e *Enum) lookupName(name string) (EnumMember, bool) {
	for _, m := range e.members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return EnumMember{}, false
}

func (e *Enum) memberNames() []string {
	names := make([]string, len(e.members))
	for i, m := range e.members {
		names[i] = m.Name
	}
	return names
}
