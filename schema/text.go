package schema

import (
	"github.com/jisotalo/iec-61131-3/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DefaultStringLength is the declared capacity used when a STRING or
// WSTRING declaration carries no explicit length.
const DefaultStringLength = 80

// TextCodec converts between Go strings and a fixed-width character set.
// It is the external collaborator of the string nodes; the defaults below
// cover the common PLC codepages.
type TextCodec interface {
	Encode(s string) ([]byte, error)
	Decode(b []byte) (string, error)
}

type xtextCodec struct {
	enc *encoding.Encoder
	dec *encoding.Decoder
}

func (c *xtextCodec) Encode(s string) ([]byte, error) {
	return c.enc.Bytes([]byte(s))
}

func (c *xtextCodec) Decode(b []byte) (string, error) {
	out, err := c.dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Windows1252 returns the default single-byte codec for STRING fields.
// Unsupported runes are replaced rather than rejected.
func Windows1252() TextCodec {
	return &xtextCodec{
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
		dec: charmap.Windows1252.NewDecoder(),
	}
}

// UTF16LE returns the default double-byte codec for WSTRING fields.
func UTF16LE() TextCodec {
	cs := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	return &xtextCodec{
		enc: cs.NewEncoder(),
		dec: cs.NewDecoder(),
	}
}

// String is a fixed-capacity single-byte text field of L characters plus a
// terminating zero byte.
type String struct {
	codec  TextCodec
	length int
}

func NewString(length int) *String {
	return NewStringWithCodec(length, Windows1252())
}

func NewStringWithCodec(length int, codec TextCodec) *String {
	if length < 0 {
		length = DefaultStringLength
	}
	return &String{length: length, codec: codec}
}

func (s *String) Kind() Kind      { return KindString }
func (s *String) ByteLength() int { return s.length + 1 }
func (s *String) Length() int     { return s.length }

// Encode writes the text into a zero-filled buffer of ByteLength bytes.
// Text longer than the declared capacity is silently truncated; the final
// zero byte is never overwritten.
func (s *String) Encode(value any) ([]byte, error) {
	buf := make([]byte, s.ByteLength())
	if value == nil {
		return buf, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as string")
	}
	raw, err := s.codec.Encode(text)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("text encoding failed").Cause(err).Build()
	}
	copy(buf[:s.length], raw)
	return buf, nil
}

// Decode reads the full region and trims at the first zero byte.
func (s *String) Decode(data []byte) (any, error) {
	if err := checkLen(data, s.ByteLength(), nil); err != nil {
		return nil, err
	}
	region := data[:s.ByteLength()]
	for i, b := range region {
		if b == 0 {
			region = region[:i]
			break
		}
	}
	text, err := s.codec.Decode(region)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Detail("text decoding failed").Cause(err).Build()
	}
	return text, nil
}

func (s *String) Default() any { return "" }

// WString is a fixed-capacity double-byte text field of L characters plus a
// terminating zero character, 2·L+2 bytes in total.
type WString struct {
	codec  TextCodec
	length int
}

func NewWString(length int) *WString {
	return NewWStringWithCodec(length, UTF16LE())
}

func NewWStringWithCodec(length int, codec TextCodec) *WString {
	if length < 0 {
		length = DefaultStringLength
	}
	return &WString{length: length, codec: codec}
}

func (s *WString) Kind() Kind      { return KindWString }
func (s *WString) ByteLength() int { return 2*s.length + 2 }
func (s *WString) Length() int     { return s.length }

func (s *WString) Encode(value any) ([]byte, error) {
	buf := make([]byte, s.ByteLength())
	if value == nil {
		return buf, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as wstring")
	}
	raw, err := s.codec.Encode(text)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Detail("text encoding failed").Cause(err).Build()
	}
	n := len(raw)
	if n > 2*s.length {
		n = 2 * s.length
		// never split a 16-bit code unit
		n &^= 1
	}
	copy(buf, raw[:n])
	return buf, nil
}

// Decode reads the full region and trims at the first zero character.
func (s *WString) Decode(data []byte) (any, error) {
	if err := checkLen(data, s.ByteLength(), nil); err != nil {
		return nil, err
	}
	region := data[:s.ByteLength()]
	end := len(region)
	for i := 0; i+1 < len(region); i += 2 {
		if region[i] == 0 && region[i+1] == 0 {
			end = i
			break
		}
	}
	text, err := s.codec.Decode(region[:end])
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Detail("text decoding failed").Cause(err).Build()
	}
	return text, nil
}

func (s *WString) Default() any { return "" }
