package resolver

import (
	"strings"

	"github.com/jisotalo/iec-61131-3/schema"
)

// primitiveKinds maps IEC 61131-3 primitive type names to scalar kinds.
// Date/time types are carried as their on-wire 32-bit unsigned form.
var primitiveKinds = map[string]schema.Kind{
	"BOOL":  schema.KindBool,
	"BYTE":  schema.KindU8,
	"USINT": schema.KindU8,
	"SINT":  schema.KindS8,
	"WORD":  schema.KindU16,
	"UINT":  schema.KindU16,
	"INT":   schema.KindS16,
	"DWORD": schema.KindU32,
	"UDINT": schema.KindU32,
	"DINT":  schema.KindS32,
	"LWORD": schema.KindU64,
	"ULINT": schema.KindU64,
	"LINT":  schema.KindS64,
	"REAL":  schema.KindF32,
	"LREAL": schema.KindF64,

	"TIME":          schema.KindU32,
	"TOD":           schema.KindU32,
	"TIME_OF_DAY":   schema.KindU32,
	"DATE":          schema.KindU32,
	"DT":            schema.KindU32,
	"DATE_AND_TIME": schema.KindU32,
}

// lookupPrimitive matches a type name against the fixed primitive table,
// case-insensitively.
func lookupPrimitive(name string) (*schema.Primitive, bool) {
	kind, ok := primitiveKinds[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return schema.MustPrimitive(kind), true
}
