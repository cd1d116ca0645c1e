package ping_worker

import (
	"context"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"go.uber.org/zap"
)

var _ check.AlertSender = LogAlerts{}

// LogAlerts writes alerts to the log instead of delivering them.
type LogAlerts struct {
	Log *zap.Logger
}

func (a LogAlerts) Send(ctx context.Context, phone, message string) error {
	fields := []zap.Field{zap.String("phone", phone), zap.String("message", message)}
	if id, ok := check.IDFrom(ctx); ok {
		fields = append(fields, zap.String("check_id", id))
	}
	a.Log.Info("alert", fields...)
	return nil
}
