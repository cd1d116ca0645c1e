package validation

import (
	"fmt"
	"strings"
)

// Field is one schema entry: a named value and the ordered rules applied to it.
// An optional field whose raw value is absent is accepted without running its rules.
type Field struct {
	Name     string
	Optional bool
	Rules    []Rule
}

func Required(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: rules}
}

func Optional(name string, rules ...Rule) Field {
	return Field{Name: name, Optional: true, Rules: rules}
}

type Schema []Field

type FieldResult struct {
	Name  string
	Valid bool
	Value any
	// Skipped is set when an optional field was absent and its rules did not run.
	Skipped bool
}

type Report struct {
	raw    map[string]any
	fields []FieldResult
}

// Validate runs every field's rules against the record. Every rule sees the raw
// value; the field's normalized value is the one reported by the last rule.
func (s Schema) Validate(rec map[string]any) *Report {
	rep := &Report{raw: rec, fields: make([]FieldResult, 0, len(s))}
	for _, f := range s {
		rep.fields = append(rep.fields, f.validate(rec[f.Name]))
	}
	return rep
}

func (f Field) validate(raw any) FieldResult {
	if f.Optional && Absent(raw) {
		return FieldResult{Name: f.Name, Valid: true, Value: raw, Skipped: true}
	}
	res := FieldResult{Name: f.Name, Valid: true, Value: raw}
	for _, rule := range f.Rules {
		r := rule(raw)
		if !r.Valid {
			res.Valid = false
		}
		res.Value = r.Value
	}
	return res
}

// Absent reports whether a value counts as not provided: nil, a blank string,
// numeric zero or false.
func Absent(v any) bool {
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) == ""
	}
	if b, isBool := v.(bool); isBool {
		return !b
	}
	return isZero(v)
}

func (r *Report) Valid() bool {
	for _, f := range r.fields {
		if !f.Valid {
			return false
		}
	}
	return true
}

// Invalid lists failing field names in schema order.
func (r *Report) Invalid() []string {
	var out []string
	for _, f := range r.fields {
		if !f.Valid {
			out = append(out, f.Name)
		}
	}
	return out
}

func (r *Report) Fields() []FieldResult {
	return append([]FieldResult(nil), r.fields...)
}

func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(r.Invalid(), ", "))
}

// Extract projects the validated record. Fields outside the schema are carried
// over untouched. With includeAbsent unset, schema fields whose normalized value
// is nil are left out. Transforms run afterwards, in order.
func (r *Report) Extract(transforms []Transform, includeAbsent bool) map[string]any {
	out := make(map[string]any, len(r.raw)+len(r.fields))
	for k, v := range r.raw {
		out[k] = v
	}
	for _, f := range r.fields {
		if f.Value == nil && !includeAbsent {
			delete(out, f.Name)
			continue
		}
		out[f.Name] = f.Value
	}
	for _, t := range transforms {
		apply(out, t)
	}
	return out
}
