package schema

import (
	"encoding/binary"
	"math"

	"github.com/jisotalo/iec-61131-3/errors"
)

// Primitive is a fixed-size scalar: boolean, signed or unsigned integer of
// 1/2/4/8 bytes, or IEEE float/double. All multi-byte values are encoded
// little-endian.
type Primitive struct {
	kind Kind
	size int
}

// NewPrimitive builds a scalar node for a primitive kind.
// Composite kinds are rejected.
func NewPrimitive(kind Kind) (*Primitive, error) {
	if !kind.IsPrimitive() {
		return nil, errors.InvalidInput(errors.PhaseResolve, nil, "kind "+kind.String()+" is not a primitive")
	}
	return &Primitive{kind: kind, size: kind.Size()}, nil
}

// MustPrimitive is NewPrimitive for statically known kinds.
func MustPrimitive(kind Kind) *Primitive {
	p, err := NewPrimitive(kind)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Primitive) Kind() Kind      { return p.kind }
func (p *Primitive) ByteLength() int { return p.size }

// Encode writes the value into exactly ByteLength little-endian bytes.
// Out-of-range numeric input wraps: only the low ByteLength bytes of the
// two's-complement representation are stored, matching a fixed-width
// register write. Non-numeric input is an invalid_input error.
func (p *Primitive) Encode(value any) ([]byte, error) {
	buf := make([]byte, p.size)

	switch p.kind {
	case KindBool:
		b, ok := toBool(value)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as "+p.kind.String())
		}
		if b {
			buf[0] = 1
		}
		return buf, nil

	case KindF32:
		f, ok := toFloat64(value)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as "+p.kind.String())
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(f)))
		return buf, nil

	case KindF64:
		f, ok := toFloat64(value)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as "+p.kind.String())
		}
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		return buf, nil

	default:
		bits, ok := numericBits(value)
		if !ok {
			return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as "+p.kind.String())
		}
		switch p.size {
		case 1:
			buf[0] = byte(bits)
		case 2:
			binary.LittleEndian.PutUint16(buf, uint16(bits))
		case 4:
			binary.LittleEndian.PutUint32(buf, uint32(bits))
		case 8:
			binary.LittleEndian.PutUint64(buf, bits)
		}
		return buf, nil
	}
}

// Decode reads ByteLength bytes and returns the value with its natural Go
// type for the kind (bool, uint8 .. int64, float32, float64).
func (p *Primitive) Decode(data []byte) (any, error) {
	if err := checkLen(data, p.size, nil); err != nil {
		return nil, err
	}

	switch p.kind {
	case KindBool:
		return data[0] != 0, nil
	case KindU8:
		return data[0], nil
	case KindS8:
		return int8(data[0]), nil
	case KindU16:
		return binary.LittleEndian.Uint16(data), nil
	case KindS16:
		return int16(binary.LittleEndian.Uint16(data)), nil
	case KindU32:
		return binary.LittleEndian.Uint32(data), nil
	case KindS32:
		return int32(binary.LittleEndian.Uint32(data)), nil
	case KindU64:
		return binary.LittleEndian.Uint64(data), nil
	case KindS64:
		return int64(binary.LittleEndian.Uint64(data)), nil
	case KindF32:
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
	case KindF64:
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
	}
	return nil, errors.InvalidInput(errors.PhaseDecode, nil, "unknown primitive kind")
}

// Default returns false, 0 or 0.0 depending on the kind.
func (p *Primitive) Default() any {
	switch p.kind {
	case KindBool:
		return false
	case KindU8:
		return uint8(0)
	case KindS8:
		return int8(0)
	case KindU16:
		return uint16(0)
	case KindS16:
		return int16(0)
	case KindU32:
		return uint32(0)
	case KindS32:
		return int32(0)
	case KindU64:
		return uint64(0)
	case KindS64:
		return int64(0)
	case KindF32:
		return float32(0)
	case KindF64:
		return float64(0)
	}
	return nil
}
