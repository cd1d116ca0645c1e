package validation

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		value any
		valid bool
	}{
		{"string", KindString, "x", true},
		{"string rejects number", KindString, 1.0, false},
		{"number float", KindNumber, 3.5, true},
		{"number int", KindNumber, 3, true},
		{"number rejects NaN", KindNumber, math.NaN(), false},
		{"number rejects string", KindNumber, "3", false},
		{"integer", KindInteger, 4.0, true},
		{"integer rejects fraction", KindInteger, 4.2, false},
		{"bool", KindBool, false, true},
		{"array", KindArray, []any{1.0}, true},
		{"object", KindObject, map[string]any{}, true},
		{"nil", KindString, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, TypeOf(tc.kind)(tc.value).Valid)
		})
	}
}

func TestStringRulesTrim(t *testing.T) {
	r := MinLength(4)("  abc  ")
	assert.False(t, r.Valid)
	assert.Equal(t, "abc", r.Value)

	r = MinLength(4)(" abcd ")
	assert.True(t, r.Valid)
	assert.Equal(t, "abcd", r.Value)

	r = MaxLength(3)(" abcd ")
	assert.False(t, r.Valid)

	assert.False(t, MinLength(1)(42.0).Valid, "wrong shape is invalid, not a panic")
}

func TestPresent(t *testing.T) {
	assert.False(t, Present()(nil).Valid)
	assert.False(t, Present()("   ").Valid)
	assert.False(t, Present()(0.0).Valid)
	r := Present()(" x ")
	assert.True(t, r.Valid)
	assert.Equal(t, "x", r.Value)
}

func TestNumericRanges(t *testing.T) {
	in := Between(1, 5, true)
	ex := Between(1, 5, false)

	assert.True(t, in(1.0).Valid)
	assert.True(t, in(5).Valid)
	assert.False(t, in(6.0).Valid)
	assert.False(t, ex(1.0).Valid)
	assert.True(t, ex(2.0).Valid)
	assert.False(t, in("3").Valid)

	assert.False(t, GreaterThan(0, false)(0.0).Valid)
	assert.True(t, GreaterThan(0, true)(0.0).Valid)
	assert.True(t, GreaterThan(0, false)(int64(1)).Valid)
}

func TestOneOf(t *testing.T) {
	r := OneOf("get", "post")
	assert.True(t, r("get").Valid)
	assert.False(t, r("GET").Valid)
	assert.False(t, r([]any{"get"}).Valid)
	assert.True(t, OneOf(200, 201)(200.0).Valid)
}

func TestNotEmptyArray(t *testing.T) {
	r := NotEmptyArray(KindNumber)
	assert.True(t, r([]any{200.0, 201.0}).Valid)
	assert.True(t, r([]int{200}).Valid)
	assert.False(t, r([]any{}).Valid)
	assert.False(t, r([]any{200.0, "201"}).Valid)
	assert.False(t, r(nil).Valid)
	assert.False(t, r("200").Valid)
}

func TestRegexAndBool(t *testing.T) {
	re := Regex(regexp.MustCompile(`^\d{10}$`))
	assert.True(t, re("5551234567").Valid)
	assert.False(t, re("555").Valid)
	assert.False(t, re(5551234567.0).Valid)

	require.True(t, Bool(true)(true).Valid)
	assert.False(t, Bool(true)(false).Valid)
	assert.False(t, Bool(true)("true").Valid)
}
