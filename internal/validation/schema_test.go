package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Required("name", TypeOf(KindString), MinLength(2)),
	Optional("state", OneOf("up", "down")),
	Optional("lastChecked", TypeOf(KindNumber), GreaterThan(0, false)),
}

func TestValidateAcceptsAndNormalizes(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": "  bob ", "state": "up"})
	require.True(t, rep.Valid())
	assert.Empty(t, rep.Invalid())

	out := rep.Extract(nil, false)
	assert.Equal(t, "bob", out["name"], "last rule's value wins")
	assert.Equal(t, "up", out["state"])
	_, has := out["lastChecked"]
	assert.False(t, has, "absent optional values are dropped")
}

func TestValidateOptionalShortCircuit(t *testing.T) {
	for _, raw := range []any{nil, "", "   ", 0.0} {
		rep := testSchema.Validate(map[string]any{"name": "bob", "lastChecked": raw})
		assert.True(t, rep.Valid(), "raw=%v", raw)
		for _, f := range rep.Fields() {
			if f.Name == "lastChecked" {
				assert.True(t, f.Skipped)
				assert.Equal(t, raw, f.Value)
			}
		}
	}
}

func TestValidateRejects(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": 12.0, "state": "sideways", "lastChecked": -4.0})
	assert.False(t, rep.Valid())
	assert.Equal(t, []string{"name", "state", "lastChecked"}, rep.Invalid())
	assert.Error(t, rep.Err())
}

func TestFieldInvalidIfAnyRuleFails(t *testing.T) {
	// the last rule passes but an earlier one did not
	s := Schema{Required("n", TypeOf(KindInteger), Between(1, 5, true))}
	rep := s.Validate(map[string]any{"n": 2.5})
	assert.False(t, rep.Valid())
}

func TestExtractKeepsUnknownFields(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": "bob", "extra": true})
	require.True(t, rep.Valid())
	out := rep.Extract(nil, false)
	assert.Equal(t, true, out["extra"])
}

func TestExtractIncludeAbsent(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": "bob"})
	out := rep.Extract(nil, true)
	v, has := out["state"]
	assert.True(t, has)
	assert.Nil(t, v)
}

func TestExtractTransforms(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": "bob", "secret": "x"})
	out := rep.Extract([]Transform{
		Drop{Field: "secret"},
		Derive{
			Field: "state",
			Fn:    func(map[string]any) any { return "down" },
			When:  func(m map[string]any) bool { return Absent(m["state"]) },
		},
		Derive{
			Field: "name",
			Fn:    func(m map[string]any) any { return "never" },
			When:  func(map[string]any) bool { return false },
		},
	}, false)

	assert.NotContains(t, out, "secret")
	assert.Equal(t, "down", out["state"])
	assert.Equal(t, "bob", out["name"])
}

func TestExtractUnknownTransformPanics(t *testing.T) {
	rep := testSchema.Validate(map[string]any{"name": "bob"})
	assert.Panics(t, func() { rep.Extract([]Transform{nil}, false) })
	assert.Panics(t, func() { rep.Extract([]Transform{Derive{Field: "x"}}, false) })
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"name": "  bob  "}
	rep := testSchema.Validate(in)
	_ = rep.Extract([]Transform{Drop{Field: "name"}}, false)
	assert.Equal(t, "  bob  ", in["name"])
}
