package kafka

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// ErrDecode marks a message whose value is not the expected protobuf.
var ErrDecode = errors.New("kafka: decode message")

type Handler func(ctx context.Context, key, value []byte) error

// ProtoHandler decodes every value into a fresh M before calling handle.
func ProtoHandler[M proto.Message](ctor func() M, handle func(context.Context, []byte, M) error) Handler {
	return func(ctx context.Context, key, value []byte) error {
		msg := ctor()
		if err := proto.Unmarshal(value, msg); err != nil {
			return fmt.Errorf("%w: %T: %v", ErrDecode, msg, err)
		}
		return handle(ctx, key, msg)
	}
}
