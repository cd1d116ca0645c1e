package record

import "errors"

// Record is a decoded JSON object as the store hands it out.
type Record map[string]any

var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrInvalidKey = errors.New("invalid record key")
)

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
