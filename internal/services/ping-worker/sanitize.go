package ping_worker

import (
	"fmt"
	"regexp"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
	v "github.com/NordCoder/Uptimer/internal/validation"
	"github.com/go-viper/mapstructure/v2"
)

var (
	idPattern    = regexp.MustCompile(`^[a-z0-9]{20}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

var checkSchema = v.Schema{
	v.Required("id", v.TypeOf(v.KindString), v.Regex(idPattern)),
	v.Required("userPhone", v.TypeOf(v.KindString), v.Regex(phonePattern)),
	v.Required("protocol", v.OneOf("http", "https")),
	v.Required("url", v.TypeOf(v.KindString), v.MinLength(4)),
	v.Required("method", v.OneOf("get", "post", "put", "delete")),
	v.Required("successCodes", v.NotEmptyArray(v.KindInteger)),
	v.Required("timeoutSeconds", v.TypeOf(v.KindInteger), v.Between(1, 5, true)),
	v.Optional("state", v.OneOf(string(check.StateUp), string(check.StateDown))),
	v.Optional("lastChecked", v.TypeOf(v.KindInteger), v.GreaterThan(0, false)),
}

var checkTransforms = []v.Transform{
	v.Derive{
		Field: "state",
		Fn:    func(map[string]any) any { return string(check.StateDown) },
		When:  func(m map[string]any) bool { return v.Absent(m["state"]) },
	},
	v.Derive{
		Field: "lastChecked",
		Fn:    func(map[string]any) any { return nil },
		When:  func(m map[string]any) bool { return v.Absent(m["lastChecked"]) },
	},
}

// Sanitize validates a stored record and decodes it into a Check.
// A missing state is loaded as down.
func Sanitize(rec record.Record) (*check.Check, error) {
	rep := checkSchema.Validate(rec)
	if !rep.Valid() {
		return nil, fmt.Errorf("%w: %v", check.ErrInvalid, rep.Err())
	}
	data := rep.Extract(checkTransforms, false)

	var c check.Check
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &c,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", check.ErrInvalid, err)
	}
	return &c, nil
}
