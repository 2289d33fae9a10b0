package schema

import (
	"strings"
	"testing"
)

func TestStringByteLength(t *testing.T) {
	if got := NewString(50).ByteLength(); got != 51 {
		t.Errorf("STRING(50): got %d, want 51", got)
	}
	if got := NewString(DefaultStringLength).ByteLength(); got != 81 {
		t.Errorf("STRING(80): got %d, want 81", got)
	}
	if got := NewWString(50).ByteLength(); got != 102 {
		t.Errorf("WSTRING(50): got %d, want 102", got)
	}
	if got := NewWString(DefaultStringLength).ByteLength(); got != 162 {
		t.Errorf("WSTRING(80): got %d, want 162", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"ascii", "hello plc"},
		{"exact_capacity", strings.Repeat("x", 10)},
		{"latin1", "über"},
	}

	s := NewString(10)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := s.Encode(tc.text)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(raw) != 11 {
				t.Fatalf("encoded length: got %d, want 11", len(raw))
			}
			got, err := s.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.text {
				t.Errorf("round trip: got %q, want %q", got, tc.text)
			}
		})
	}
}

func TestStringTruncation(t *testing.T) {
	s := NewString(5)
	raw, err := s.Encode("truncated text")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(raw) != 6 {
		t.Fatalf("capacity exceeded: got %d bytes", len(raw))
	}
	got, err := s.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "trunc" {
		t.Errorf("got %q, want %q", got, "trunc")
	}
}

func TestStringTrimsAtFirstZero(t *testing.T) {
	s := NewString(10)
	raw := make([]byte, 11)
	copy(raw, "ab")
	// non-zero garbage after the terminator must be discarded
	raw[5] = 'z'
	got, err := s.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
}

func TestWStringRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"ascii", "hello"},
		{"non_latin", "héllo wörld"},
		{"exact_capacity", strings.Repeat("y", 12)},
	}

	s := NewWString(12)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := s.Encode(tc.text)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if len(raw) != 26 {
				t.Fatalf("encoded length: got %d, want 26", len(raw))
			}
			got, err := s.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tc.text {
				t.Errorf("round trip: got %q, want %q", got, tc.text)
			}
		})
	}
}

func TestWStringTruncation(t *testing.T) {
	s := NewWString(4)
	raw, err := s.Encode("overlong")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(raw) != 10 {
		t.Fatalf("capacity exceeded: got %d bytes", len(raw))
	}
	got, err := s.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "over" {
		t.Errorf("got %q, want %q", got, "over")
	}
}

func TestStringDefault(t *testing.T) {
	s := NewString(20)
	if s.Default() != "" {
		t.Errorf("default: got %q", s.Default())
	}
	raw, err := s.Encode(s.Default())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := s.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != "" {
		t.Errorf("default fixed point: got %q", got)
	}
}

func TestStringRejectsNonString(t *testing.T) {
	if _, err := NewString(5).Encode(42); err == nil {
		t.Error("expected error for numeric input")
	}
	if _, err := NewWString(5).Encode([]byte("x")); err == nil {
		t.Error("expected error for byte slice input")
	}
}
