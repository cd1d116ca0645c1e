package kafka

import (
	"context"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"google.golang.org/protobuf/types/known/structpb"
)

// Alert event fields.
const (
	FieldPhone   = "phone"
	FieldMessage = "message"
	FieldCheckID = "check_id"
	FieldAt      = "at"
)

var _ check.AlertSender = (*AlertEventsKafka)(nil)

// AlertEventsKafka hands alerts to the sms-notifier through a topic.
type AlertEventsKafka struct {
	p   *Producer
	now func() time.Time
}

func NewAlertEventsKafka(p *Producer) *AlertEventsKafka {
	return &AlertEventsKafka{p: p, now: time.Now}
}

func (e *AlertEventsKafka) Send(ctx context.Context, phone, message string) error {
	ev, err := NewAlertEvent(ctx, phone, message, e.now())
	if err != nil {
		return err
	}
	key := phone
	if id, ok := check.IDFrom(ctx); ok {
		key = id
	}
	return e.p.PublishProto(ctx, []byte(key), ev)
}

func NewAlertEvent(ctx context.Context, phone, message string, at time.Time) (*structpb.Struct, error) {
	fields := map[string]any{
		FieldPhone:   phone,
		FieldMessage: message,
		FieldAt:      at.UTC().Format(time.RFC3339),
	}
	if id, ok := check.IDFrom(ctx); ok {
		fields[FieldCheckID] = id
	}
	return structpb.NewStruct(fields)
}
