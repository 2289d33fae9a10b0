package schema

import (
	"bytes"
	"testing"
)

func TestPrimitiveByteLength(t *testing.T) {
	tests := []struct {
		kind Kind
		size int
	}{
		{KindBool, 1},
		{KindU8, 1},
		{KindS8, 1},
		{KindU16, 2},
		{KindS16, 2},
		{KindU32, 4},
		{KindS32, 4},
		{KindU64, 8},
		{KindS64, 8},
		{KindF32, 4},
		{KindF64, 8},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			p := MustPrimitive(tc.kind)
			if p.ByteLength() != tc.size {
				t.Errorf("byte length: got %d, want %d", p.ByteLength(), tc.size)
			}
		})
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value any
		want  any
	}{
		{"bool_true", KindBool, true, true},
		{"bool_false", KindBool, false, false},
		{"u8", KindU8, uint8(200), uint8(200)},
		{"s8_negative", KindS8, int8(-5), int8(-5)},
		{"u16", KindU16, uint16(60000), uint16(60000)},
		{"s16", KindS16, int16(-12345), int16(-12345)},
		{"u32", KindU32, uint32(4000000000), uint32(4000000000)},
		{"s32", KindS32, int32(-2000000000), int32(-2000000000)},
		{"u64", KindU64, uint64(1) << 60, uint64(1) << 60},
		{"s64", KindS64, int64(-1) << 50, int64(-1) << 50},
		{"f32", KindF32, float32(3.25), float32(3.25)},
		{"f64", KindF64, float64(-123.0625), float64(-123.0625)},
		{"int_input_for_s16", KindS16, 42, int16(42)},
		{"float_input_for_u8", KindU8, float64(7), uint8(7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := MustPrimitive(tc.kind)
			raw, err := p.Encode(tc.value)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(raw) != p.ByteLength() {
				t.Fatalf("encoded length: got %d, want %d", len(raw), p.ByteLength())
			}
			got, err := p.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.want {
				t.Errorf("round trip: got %v (%T), want %v (%T)", got, got, tc.want, tc.want)
			}
		})
	}
}

func TestPrimitiveLittleEndian(t *testing.T) {
	p := MustPrimitive(KindU32)
	raw, err := p.Encode(uint32(0x01020304))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(raw, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Errorf("byte order: got % x", raw)
	}
}

func TestPrimitiveOverflowWraps(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value any
		want  any
	}{
		{"u8_wrap", KindU8, 256, uint8(0)},
		{"u8_wrap_300", KindU8, 300, uint8(44)},
		{"s8_wrap", KindS8, 130, int8(-126)},
		{"u16_negative", KindU16, -1, uint16(65535)},
		{"s16_wrap", KindS16, 40000, int16(-25536)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := MustPrimitive(tc.kind)
			raw, err := p.Encode(tc.value)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := p.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPrimitiveDefault(t *testing.T) {
	for _, kind := range []Kind{KindBool, KindU8, KindS8, KindU16, KindS16, KindU32, KindS32, KindU64, KindS64, KindF32, KindF64} {
		t.Run(kind.String(), func(t *testing.T) {
			p := MustPrimitive(kind)
			raw, err := p.Encode(p.Default())
			if err != nil {
				t.Fatalf("encode default: %v", err)
			}
			for _, b := range raw {
				if b != 0 {
					t.Fatalf("default encoding not zero: % x", raw)
				}
			}
			got, err := p.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != p.Default() {
				t.Errorf("default fixed point: got %v, want %v", got, p.Default())
			}
		})
	}
}

func TestPrimitiveErrors(t *testing.T) {
	p := MustPrimitive(KindS16)

	if _, err := p.Encode("not a number"); err == nil {
		t.Error("expected error for non-numeric input")
	}
	if _, err := p.Decode([]byte{1}); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := NewPrimitive(KindStruct); err == nil {
		t.Error("expected error for composite kind")
	}
}
