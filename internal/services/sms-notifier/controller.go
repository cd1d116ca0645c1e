package notifier

import (
	"context"
	"time"

	kafkax "github.com/NordCoder/Uptimer/internal/repository/kafka"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

type Controller struct {
	Log *zap.Logger
	Sub *kafkax.Consumer
	UC  *Handler
}

// Run consumes alert events until ctx is done. Every event is committed once
// handled, whether or not delivery worked: there are no redeliveries.
func (c *Controller) Run(ctx context.Context) error {
	handler := kafkax.ProtoHandler(
		func() *structpb.Struct { return &structpb.Struct{} },
		func(ctx context.Context, _ []byte, ev *structpb.Struct) error {
			if err := c.UC.HandleAlert(ctx, DecodeAlert(ev)); err != nil {
				c.Log.Debug("alert not delivered", zap.Error(err))
			}
			return nil
		},
	)
	return c.Sub.Consume(ctx, handler)
}

func DecodeAlert(ev *structpb.Struct) Alert {
	f := ev.GetFields()
	a := Alert{
		CheckID: f[kafkax.FieldCheckID].GetStringValue(),
		Phone:   f[kafkax.FieldPhone].GetStringValue(),
		Message: f[kafkax.FieldMessage].GetStringValue(),
	}
	if at, err := time.Parse(time.RFC3339, f[kafkax.FieldAt].GetStringValue()); err == nil {
		a.At = at
	}
	return a
}
