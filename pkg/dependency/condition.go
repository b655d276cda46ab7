package dependency

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is a pure predicate over one field value. Implementations must be
// total over the value domain they are registered against; the engine does
// not recover from panics in user-supplied predicates.
type Condition interface {
	Evaluate(value any) bool
}

// ConditionFunc adapts a function into a Condition.
type ConditionFunc func(value any) bool

// Evaluate delegates to the underlying function.
func (fn ConditionFunc) Evaluate(value any) bool {
	return fn(value)
}

// Equals matches when the field value equals want after loose coercion:
// numbers compare numerically regardless of Go type, everything else
// compares by string form.
func Equals(want any) Condition {
	return ConditionFunc(func(value any) bool {
		return looseEqual(value, want)
	})
}

// NotEquals is the negation of Equals.
func NotEquals(want any) Condition {
	return ConditionFunc(func(value any) bool {
		return !looseEqual(value, want)
	})
}

// GreaterThan matches when the field value is numerically greater than want.
// Non-numeric values never match.
func GreaterThan(want float64) Condition {
	return ConditionFunc(func(value any) bool {
		got, ok := coerceNumber(value)
		return ok && got > want
	})
}

// LessThan matches when the field value is numerically less than want.
// Non-numeric values never match.
func LessThan(want float64) Condition {
	return ConditionFunc(func(value any) bool {
		got, ok := coerceNumber(value)
		return ok && got < want
	})
}

// Truthy matches non-zero values: true booleans, non-blank strings, non-zero
// numbers, non-empty slices and maps.
func Truthy() Condition {
	return ConditionFunc(truthy)
}

// Falsy is the negation of Truthy.
func Falsy() Condition {
	return ConditionFunc(func(value any) bool {
		return !truthy(value)
	})
}

// OneOf matches when the field value loosely equals any of the candidates.
func OneOf(candidates ...any) Condition {
	values := append([]any(nil), candidates...)
	return ConditionFunc(func(value any) bool {
		for _, candidate := range values {
			if looseEqual(value, candidate) {
				return true
			}
		}
		return false
	})
}

func looseEqual(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	if gotNum, ok := coerceNumber(got); ok {
		if wantNum, ok := coerceNumber(want); ok {
			return gotNum == wantNum
		}
	}
	if gotBool, ok := strictBool(got); ok {
		if wantBool, ok := strictBool(want); ok {
			return gotBool == wantBool
		}
	}
	return coerceString(got) == coerceString(want)
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func strictBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return parsed, err == nil
	default:
		return false, false
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(value)
	}
}
