package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	mConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uptimer_sms_notifier_events_consumed_total", Help: "Alert events consumed",
	})
	mSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uptimer_sms_notifier_sms_sent_total", Help: "SMS delivered",
	})
	mErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uptimer_sms_notifier_errors_total", Help: "Errors by kind",
	}, []string{"kind"})
)

var ErrBadEvent = errors.New("malformed alert event")

type Alert struct {
	CheckID string
	Phone   string
	Message string
	At      time.Time
}

type Handler struct {
	Log *zap.Logger
	Out check.AlertSender
}

// HandleAlert delivers one alert. Delivery is attempted once; failures are
// logged and dropped.
func (h *Handler) HandleAlert(ctx context.Context, a Alert) error {
	mConsumed.Inc()
	log := obs.WithTrace(ctx, h.Log).With(zap.String("check_id", a.CheckID))

	if a.Phone == "" || a.Message == "" {
		mErrors.WithLabelValues("bad_event").Inc()
		log.Warn("alert event without phone or message, dropped")
		return fmt.Errorf("%w: phone=%q", ErrBadEvent, a.Phone)
	}

	if err := h.Out.Send(ctx, a.Phone, a.Message); err != nil {
		mErrors.WithLabelValues("send").Inc()
		log.Warn("sms delivery failed", zap.Error(err), zap.Time("alert_at", a.At))
		return fmt.Errorf("send sms: %w", err)
	}
	mSent.Inc()
	log.Info("sms sent", zap.Duration("lag", time.Since(a.At)))
	return nil
}
