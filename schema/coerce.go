package schema

import (
	"fmt"
	"math"
)

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

// numericBits returns the two's-complement bit pattern of any numeric input.
// Floats are truncated toward zero; values wider than the target width wrap
// when the caller keeps only the low bytes.
func numericBits(value any) (uint64, bool) {
	switch v := value.(type) {
	case int:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case float32:
		return truncFloat(float64(v))
	case float64:
		return truncFloat(v)
	}
	return 0, false
}

func truncFloat(f float64) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return uint64(int64(f)), true
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func toBool(value any) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	if bits, ok := numericBits(value); ok {
		return bits != 0, true
	}
	return false, false
}
