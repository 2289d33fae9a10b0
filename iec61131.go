// Package iec61131 converts between IEC 61131-3 data type declarations,
// Go value trees and tightly packed little-endian byte buffers.
//
// Typical use resolves declaration text once and reuses the returned schema
// node for any number of encode and decode operations:
//
//	dt, err := iec61131.ResolveTypes(declarations, iec61131.WithTopLevel("ST_Example"))
//	if err != nil { ... }
//	data, err := iec61131.EncodeToBytes(dt, map[string]any{"Decimal": 3.14})
//	value, err := iec61131.DecodeFromBytes(dt, data)
//
// Layouts assume pack-mode 1: no padding between members, multi-byte scalars
// little-endian.
package iec61131

import (
	"iter"

	"github.com/jisotalo/iec-61131-3/resolver"
	"github.com/jisotalo/iec-61131-3/schema"
)

// DataType is a resolved schema node.
type DataType = schema.DataType

// Option configures type resolution.
type Option = resolver.Option

var (
	// WithTopLevel names the declaration to resolve when the text declares
	// several types.
	WithTopLevel = resolver.WithTopLevel

	// WithProvidedTypes supplies externally built schema nodes for names the
	// declaration text does not define.
	WithProvidedTypes = resolver.WithProvidedTypes
)

// ResolveTypes extracts TYPE declarations from source text and links them
// into a schema node graph, returning the top-level type's node.
func ResolveTypes(declarations string, opts ...Option) (DataType, error) {
	return resolver.ResolveTypes(declarations, opts...)
}

// EncodeToBytes converts a value tree to the type's packed byte layout.
func EncodeToBytes(dt DataType, value any) ([]byte, error) {
	return dt.Encode(value)
}

// DecodeFromBytes converts a packed byte buffer back to a value tree.
func DecodeFromBytes(dt DataType, data []byte) (any, error) {
	return dt.Decode(data)
}

// Fields iterates the type's fields in memory order, recursing into structs
// and unions but yielding arrays as single units.
func Fields(dt DataType) iter.Seq[schema.Field] {
	return schema.Fields(dt)
}

// Elements iterates in memory order with arrays expanded element by element.
func Elements(dt DataType) iter.Seq[schema.Field] {
	return schema.Elements(dt)
}
