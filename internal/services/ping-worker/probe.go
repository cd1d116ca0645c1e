package ping_worker

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
)

const drainLimit = 64 << 10

var _ check.Prober = (*Prober)(nil)

type Prober struct {
	Client    *http.Client
	UserAgent string
}

func NewProber(client *http.Client, userAgent string) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{Client: client, UserAgent: userAgent}
}

// Probe sends one request and reports the first terminal event: a response,
// a transport error or the check's timeout. Anything that happens later is discarded.
func (p *Prober) Probe(parent context.Context, c *check.Check) check.Outcome {
	start := time.Now()
	out := p.probe(parent, c)
	observeProbe(out, time.Since(start))
	return out
}

func (p *Prober) probe(parent context.Context, c *check.Check) check.Outcome {
	target, err := c.Target()
	if err != nil {
		return check.Outcome{Err: err}
	}

	ctx, cancel := context.WithTimeout(parent, c.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(c.Method), target.String(), nil)
	if err != nil {
		return check.Outcome{Err: err}
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	done := make(chan check.Outcome, 1)
	go func() {
		resp, err := p.Client.Do(req)
		if err != nil {
			done <- check.Outcome{Err: err}
			return
		}
		// drain before reporting: the deferred cancel would cut the read
		// short and the connection could not go back to the pool
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		_ = resp.Body.Close()
		done <- check.Outcome{Code: resp.StatusCode}
	}()

	select {
	case out := <-done:
		if out.Err != nil {
			return check.Outcome{Err: p.cause(parent, ctx, out.Err)}
		}
		return out
	case <-ctx.Done():
		return check.Outcome{Err: p.cause(parent, ctx, ctx.Err())}
	}
}

// cause tells a probe deadline apart from the caller giving up.
func (p *Prober) cause(parent, ctx context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return check.ErrTimeout
	}
	return err
}
