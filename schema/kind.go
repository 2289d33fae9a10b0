package schema

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindString
	KindWString
	KindStruct
	KindUnion
	KindArray
	KindEnum
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindString:  "string",
	KindWString: "wstring",
	KindStruct:  "struct",
	KindUnion:   "union",
	KindArray:   "array",
	KindEnum:    "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindF64
}

func (k Kind) IsInteger() bool {
	return k >= KindU8 && k <= KindS64
}

var kindSizes = [...]int{
	KindBool: 1,
	KindU8:   1,
	KindS8:   1,
	KindU16:  2,
	KindS16:  2,
	KindU32:  4,
	KindS32:  4,
	KindU64:  8,
	KindS64:  8,
	KindF32:  4,
	KindF64:  8,
}

// Size returns the encoded byte size of a primitive kind, or 0 for
// composite kinds whose size depends on their children.
func (k Kind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}
