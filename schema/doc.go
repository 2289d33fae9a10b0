// Package schema models IEC 61131-3 data types as immutable nodes with
// byte-exact codecs.
//
// # Layout
//
// All layouts are tightly packed (pack-mode 1): no alignment padding is
// inserted anywhere, and every node knows its byte length at construction:
//
//	Type            Bytes
//	─────────────────────
//	bool, u8/s8     1
//	u16/s16         2
//	u32/s32/f32     4
//	u64/s64/f64     8
//	STRING(L)       L + 1
//	WSTRING(L)      2·L + 2
//	STRUCT          sum of members, declared order
//	UNION           max of members, all at offset 0
//	ARRAY           product of dimensions × element
//	ENUM            backing primitive (default s16)
//
// Multi-byte scalars are little-endian.
//
// # Value trees
//
// Encode and Decode exchange dynamic value trees: map[string]any for
// STRUCT/UNION, []any per ARRAY dimension, string for STRING/WSTRING,
// EnumValue for ENUM, and natural Go scalars for primitives. A nil value
// passed to a composite Encode yields a zero-length buffer, distinct from
// the all-default encoding.
//
// # Iteration
//
// Fields and Elements traverse a schema's fields in buffer-offset order,
// either keeping arrays whole or expanding them element by element. Both
// return lazy, restartable sequences.
//
// # Thread safety
//
// Nodes are immutable after construction and safe for concurrent use;
// Encode and Decode are pure functions of their inputs.
package schema
