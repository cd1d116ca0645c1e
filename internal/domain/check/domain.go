package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/record"
)

// Category is the store category holding checks.
const Category = "checks"

type State string

const (
	StateUp   State = "up"
	StateDown State = "down"
)

var (
	ErrInvalid = errors.New("invalid check")
	ErrTimeout = errors.New("probe timed out")
)

type Check struct {
	ID             string `json:"id"`
	UserPhone      string `json:"userPhone"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	State          State  `json:"state,omitempty"`
	LastChecked    *int64 `json:"lastChecked,omitempty"`
}

func (c *Check) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Target builds the probe URL from protocol and the stored url (host, path, query).
func (c *Check) Target() (*url.URL, error) {
	u, err := url.Parse(c.Protocol + "://" + strings.TrimSpace(c.URL))
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse target %q: empty host", c.URL)
	}
	u.Fragment = ""
	return u, nil
}

func (c *Check) AlertMessage() string {
	return fmt.Sprintf("Alert: Your check for %s %s://%s is currently %s",
		strings.ToUpper(c.Method), c.Protocol, c.URL, c.State)
}

// Record renders the check in its persisted JSON shape.
func (c *Check) Record() (record.Record, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal check: %w", err)
	}
	var rec record.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal check: %w", err)
	}
	return rec, nil
}

// Stamped returns a copy of the loaded record with the worker-owned fields
// (state, lastChecked) taken from c. Every other field is left as loaded.
func (c *Check) Stamped(loaded record.Record) record.Record {
	out := loaded.Clone()
	out["state"] = string(c.State)
	if c.LastChecked != nil {
		out["lastChecked"] = float64(*c.LastChecked)
	} else {
		delete(out, "lastChecked")
	}
	return out
}

// Outcome is the result of a single probe. Code is zero when no response was received.
type Outcome struct {
	Code int
	Err  error
}

func (o Outcome) Responded() bool { return o.Err == nil && o.Code != 0 }
