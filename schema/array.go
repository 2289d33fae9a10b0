package schema

import (
	"strconv"

	"github.com/jisotalo/iec-61131-3/errors"
)

// Array is an N-dimensional fixed-size array, N >= 1, laid out row-major:
// the last dimension varies fastest in the buffer.
type Array struct {
	element    DataType
	dimensions []int
	totalSize  int
	byteLength int
}

// NewArray builds an array node over an element type and one or more
// dimension sizes. The element count is computed once here and reused by
// every encode/decode call.
func NewArray(element DataType, dimensions []int) (*Array, error) {
	if element == nil {
		return nil, errors.InvalidStructMember(nil, "array element has no data type")
	}
	if len(dimensions) == 0 {
		return nil, errors.InvalidInput(errors.PhaseResolve, nil, "array needs at least one dimension")
	}
	total := 1
	for _, d := range dimensions {
		if d < 1 {
			return nil, errors.InvalidInput(errors.PhaseResolve, nil, "array dimension must be positive")
		}
		total *= d
	}
	return &Array{
		element:    element,
		dimensions: dimensions,
		totalSize:  total,
		byteLength: total * element.ByteLength(),
	}, nil
}

func (a *Array) Kind() Kind        { return KindArray }
func (a *Array) ByteLength() int   { return a.byteLength }
func (a *Array) Element() DataType { return a.element }
func (a *Array) Dimensions() []int { return a.dimensions }
func (a *Array) TotalSize() int    { return a.totalSize }

// Encode walks the dimensions outermost to innermost. A nil input returns a
// zero-length buffer. Short input sequences are padded with element
// defaults; excess entries are ignored.
func (a *Array) Encode(value any) ([]byte, error) {
	if value == nil {
		return []byte{}, nil
	}
	buf := make([]byte, 0, a.byteLength)
	return a.encodeDim(buf, value, 0)
}

func (a *Array) encodeDim(buf []byte, value any, dim int) ([]byte, error) {
	values, ok := value.([]any)
	if !ok && value != nil {
		return nil, errors.InvalidInput(errors.PhaseEncode, nil, "cannot encode "+typeName(value)+" as array dimension")
	}

	for i := 0; i < a.dimensions[dim]; i++ {
		var v any
		if i < len(values) {
			v = values[i]
		}
		if dim < len(a.dimensions)-1 {
			out, err := a.encodeDim(buf, v, dim+1)
			if err != nil {
				return nil, prependPath(err, indexName(i))
			}
			buf = out
			continue
		}
		if v == nil {
			v = a.element.Default()
		}
		raw, err := a.element.Encode(v)
		if err != nil {
			return nil, prependPath(err, indexName(i))
		}
		buf = append(buf, raw...)
	}
	return buf, nil
}

// Decode returns nested []any sequences, one level per dimension.
func (a *Array) Decode(data []byte) (any, error) {
	if err := checkLen(data, a.byteLength, nil); err != nil {
		return nil, err
	}
	v, _, err := a.decodeDim(data, 0)
	return v, err
}

func (a *Array) decodeDim(data []byte, dim int) ([]any, int, error) {
	values := make([]any, a.dimensions[dim])
	offset := 0
	for i := range values {
		if dim < len(a.dimensions)-1 {
			nested, n, err := a.decodeDim(data[offset:], dim+1)
			if err != nil {
				return nil, 0, prependPath(err, indexName(i))
			}
			values[i] = nested
			offset += n
			continue
		}
		v, err := a.element.Decode(data[offset : offset+a.element.ByteLength()])
		if err != nil {
			return nil, 0, prependPath(err, indexName(i))
		}
		values[i] = v
		offset += a.element.ByteLength()
	}
	return values, offset, nil
}

// Default returns nested sequences of element defaults.
func (a *Array) Default() any {
	return a.defaultDim(0)
}

func (a *Array) defaultDim(dim int) []any {
	values := make([]any, a.dimensions[dim])
	for i := range values {
		if dim < len(a.dimensions)-1 {
			values[i] = a.defaultDim(dim + 1)
		} else {
			values[i] = a.element.Default()
		}
	}
	return values
}

func indexName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
