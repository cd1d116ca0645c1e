package validation

import (
	"math"
	"reflect"
	"regexp"
	"strings"
)

// Kind is the primitive shape a rule expects.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindInteger
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Result is what a rule reports for a single value.
type Result struct {
	Valid bool
	Value any
}

func ok(v any) Result   { return Result{Valid: true, Value: v} }
func fail(v any) Result { return Result{Valid: false, Value: v} }

func check(v any, cond bool) Result { return Result{Valid: cond, Value: v} }

// Rule validates a raw value. Rules never panic on a value of the wrong shape.
type Rule func(value any) Result

func TypeOf(kind Kind) Rule {
	return func(v any) Result { return check(v, isKind(v, kind)) }
}

// Present rejects nil, zero values and blank strings. Strings are trimmed.
func Present() Rule {
	return func(v any) Result {
		if s, isStr := v.(string); isStr {
			t := strings.TrimSpace(s)
			return check(t, t != "")
		}
		return check(v, !isZero(v))
	}
}

func OneOf(values ...any) Rule {
	return func(v any) Result {
		for _, want := range values {
			if equal(v, want) {
				return ok(v)
			}
		}
		return fail(v)
	}
}

func Between(lo, hi float64, inclusive bool) Rule {
	return func(v any) Result {
		n, isNum := number(v)
		if !isNum {
			return fail(v)
		}
		if inclusive {
			return check(v, n >= lo && n <= hi)
		}
		return check(v, n > lo && n < hi)
	}
}

func GreaterThan(min float64, inclusive bool) Rule {
	return func(v any) Result {
		n, isNum := number(v)
		if !isNum {
			return fail(v)
		}
		if inclusive {
			return check(v, n >= min)
		}
		return check(v, n > min)
	}
}

// MinLength measures the trimmed string; the trimmed string is the normalized value.
func MinLength(n int) Rule {
	return func(v any) Result {
		s, isStr := v.(string)
		if !isStr {
			return fail(v)
		}
		t := strings.TrimSpace(s)
		return check(t, len([]rune(t)) >= n)
	}
}

func MaxLength(n int) Rule {
	return func(v any) Result {
		s, isStr := v.(string)
		if !isStr {
			return fail(v)
		}
		t := strings.TrimSpace(s)
		return check(t, len([]rune(t)) <= n)
	}
}

// NotEmptyArray accepts a non-empty list whose every element is of the given kind.
func NotEmptyArray(kind Kind) Rule {
	return func(v any) Result {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() == 0 {
			return fail(v)
		}
		for i := 0; i < rv.Len(); i++ {
			if !isKind(rv.Index(i).Interface(), kind) {
				return fail(v)
			}
		}
		return ok(v)
	}
}

func Regex(re *regexp.Regexp) Rule {
	return func(v any) Result {
		s, isStr := v.(string)
		if !isStr {
			return fail(v)
		}
		return check(v, re.MatchString(s))
	}
}

func Bool(expected bool) Rule {
	return func(v any) Result {
		b, isBool := v.(bool)
		return check(v, isBool && b == expected)
	}
}

func isKind(v any, kind Kind) bool {
	switch kind {
	case KindString:
		_, isStr := v.(string)
		return isStr
	case KindNumber:
		_, isNum := number(v)
		return isNum
	case KindInteger:
		n, isNum := number(v)
		return isNum && n == math.Trunc(n)
	case KindBool:
		_, isBool := v.(bool)
		return isBool
	case KindArray:
		rv := reflect.ValueOf(v)
		return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
	case KindObject:
		rv := reflect.ValueOf(v)
		return rv.IsValid() && rv.Kind() == reflect.Map
	default:
		return false
	}
}

// number widens any Go numeric value. NaN and infinities are not numbers here.
func number(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int8:
		n = float64(x)
	case int16:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case uint8:
		n = float64(x)
	case uint16:
		n = float64(x)
	case uint32:
		n = float64(x)
	case uint64:
		n = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func equal(a, b any) bool {
	if na, isNum := number(a); isNum {
		nb, bothNum := number(b)
		return bothNum && na == nb
	}
	return reflect.DeepEqual(a, b)
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	if n, isNum := number(v); isNum {
		return n == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}
