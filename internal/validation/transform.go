package validation

import "fmt"

// Transform is a post-processing step for Report.Extract: either Drop or Derive.
type Transform interface {
	transform()
}

// Drop removes a field from the extracted record.
type Drop struct {
	Field string
}

// Derive sets Field to Fn(record) when When is nil or reports true.
type Derive struct {
	Field string
	Fn    func(map[string]any) any
	When  func(map[string]any) bool
}

func (Drop) transform()   {}
func (Derive) transform() {}

// apply panics on anything it does not recognize: that is a broken schema, not bad data.
func apply(target map[string]any, t Transform) {
	switch t := t.(type) {
	case Drop:
		delete(target, t.Field)
	case Derive:
		if t.Fn == nil {
			panic(fmt.Sprintf("validation: derive %q without a function", t.Field))
		}
		if t.When == nil || t.When(target) {
			target[t.Field] = t.Fn(target)
		}
	default:
		panic(fmt.Sprintf("validation: unknown transform %T", t))
	}
}
