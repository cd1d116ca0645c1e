package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNewAlertEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := check.WithID(context.Background(), "abcdefghij0123456789")

	ev, err := NewAlertEvent(ctx, "5551234567", "down!", at)
	require.NoError(t, err)

	b, err := proto.Marshal(ev)
	require.NoError(t, err)

	var got structpb.Struct
	require.NoError(t, proto.Unmarshal(b, &got))
	f := got.GetFields()
	assert.Equal(t, "5551234567", f[FieldPhone].GetStringValue())
	assert.Equal(t, "down!", f[FieldMessage].GetStringValue())
	assert.Equal(t, "abcdefghij0123456789", f[FieldCheckID].GetStringValue())
	assert.Equal(t, "2026-03-01T12:00:00Z", f[FieldAt].GetStringValue())
}

func TestNewAlertEventWithoutCheckID(t *testing.T) {
	ev, err := NewAlertEvent(context.Background(), "5551234567", "up", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, ev.GetFields(), FieldCheckID)
}

func TestEnsureTopicNoBrokers(t *testing.T) {
	err := EnsureTopic(context.Background(), nil, TopicSpec{Name: "x"}, nil)
	assert.ErrorIs(t, err, ErrNoBrokers)
}

func TestProtoHandlerDecodeError(t *testing.T) {
	called := false
	h := ProtoHandler(
		func() *structpb.Struct { return &structpb.Struct{} },
		func(context.Context, []byte, *structpb.Struct) error { called = true; return nil },
	)
	err := h(context.Background(), nil, []byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrDecode)
	assert.False(t, called)
}

func TestHeadersRoundTrip(t *testing.T) {
	out := outHeaders{"traceparent": "00-abc-def-01", "baggage": "k=v"}
	hs := out.kafka()
	require.Len(t, hs, 2)
	assert.Equal(t, "baggage", hs[0].Key)

	in := inHeaders(hs)
	assert.Equal(t, "00-abc-def-01", in.Get("traceparent"))
	assert.Empty(t, in.Get("missing"))
	assert.ElementsMatch(t, []string{"traceparent", "baggage"}, in.Keys())
}
