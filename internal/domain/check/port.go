package check

import (
	"context"
	"time"
)

type AlertSender interface {
	Send(ctx context.Context, phone, message string) error
}

type Prober interface {
	Probe(ctx context.Context, c *Check) Outcome
}

type Clock interface {
	Now() time.Time
}

type ctxKey struct{}

// WithID tags ctx with the id of the check being processed so that
// alert transports can attach it to outgoing events.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func IDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
