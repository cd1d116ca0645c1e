package ping_worker

import (
	"context"
	"fmt"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/NordCoder/Uptimer/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type CheckStore interface {
	IDs(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) (record.Record, error)
	Save(ctx context.Context, id string, rec record.Record) error
}

type Handler struct {
	Log    *zap.Logger
	Checks CheckStore
	Probe  check.Prober
	Alerts check.AlertSender
	Clock  check.Clock
}

// Result is what one evaluation did.
type Result struct {
	State     check.State
	Changed   bool
	Persisted bool
	Alerted   bool
}

// HandleCheck runs the whole pipeline for one id: load, sanitize, probe,
// evaluate, persist and, if the state flipped and was saved, alert.
// Load and validation failures are returned; later failures are logged and
// reflected in the Result.
func (h *Handler) HandleCheck(ctx context.Context, id string) (Result, error) {
	ctx, span := otel.Tracer("ping-worker").Start(ctx, "worker.check")
	defer span.End()
	span.SetAttributes(attribute.String("check.id", id))
	log := obs.WithTrace(ctx, h.Log).With(zap.String("check_id", id))

	rec, err := h.Checks.Load(ctx, id)
	if err != nil {
		mErrors.WithLabelValues(stageRead).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "read")
		return Result{}, fmt.Errorf("read check %s: %w", id, err)
	}
	chk, err := Sanitize(rec)
	if err != nil {
		mErrors.WithLabelValues(stageValidate).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "validate")
		return Result{}, fmt.Errorf("check %s: %w", id, err)
	}

	out := h.Probe.Probe(ctx, chk)
	if ctx.Err() != nil {
		// shutting down: do not record a probe we cut short
		return Result{}, ctx.Err()
	}

	next, alert := Evaluate(chk.State, chk.LastChecked, out, chk.SuccessCodes)
	res := Result{State: next, Changed: next != chk.State}
	mChecks.WithLabelValues(string(next)).Inc()
	span.SetAttributes(
		attribute.String("check.state", string(next)),
		attribute.Int("probe.code", out.Code),
		attribute.Bool("check.alert", alert),
	)
	if out.Err != nil {
		log.Debug("probe failed", zap.Error(out.Err))
	}

	stamp := Stamp(chk.LastChecked, h.Clock.Now().UnixMilli())
	chk.State = next
	chk.LastChecked = &stamp

	if err := h.Checks.Save(ctx, id, chk.Stamped(rec)); err != nil {
		mErrors.WithLabelValues(stagePersist).Inc()
		span.RecordError(err)
		log.Warn("persist check failed, alert suppressed", zap.Error(err))
		return res, nil
	}
	res.Persisted = true

	if !alert {
		return res, nil
	}

	msg := chk.AlertMessage()
	if err := h.Alerts.Send(check.WithID(ctx, id), chk.UserPhone, msg); err != nil {
		mErrors.WithLabelValues(stageAlert).Inc()
		mAlerts.WithLabelValues("failed").Inc()
		span.RecordError(err)
		log.Warn("alert failed", zap.Error(err))
		return res, nil
	}
	mAlerts.WithLabelValues("sent").Inc()
	res.Alerted = true
	log.Info("state changed", zap.String("state", string(next)))
	return res, nil
}
