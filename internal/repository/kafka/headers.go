package kafka

import (
	"sort"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
)

var (
	_ propagation.TextMapCarrier = outHeaders{}
	_ propagation.TextMapCarrier = inHeaders{}
)

// outHeaders collects trace headers for a message being produced.
type outHeaders map[string]string

func (h outHeaders) Get(k string) string { return h[k] }
func (h outHeaders) Set(k, v string)     { h[k] = v }

func (h outHeaders) Keys() []string {
	ks := make([]string, 0, len(h))
	for k := range h {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func (h outHeaders) kafka() []kafka.Header {
	out := make([]kafka.Header, 0, len(h))
	for _, k := range h.Keys() {
		out = append(out, kafka.Header{Key: k, Value: []byte(h[k])})
	}
	return out
}

// inHeaders reads trace headers off a consumed message. It is read-only.
type inHeaders []kafka.Header

func (h inHeaders) Get(k string) string {
	for _, x := range h {
		if x.Key == k {
			return string(x.Value)
		}
	}
	return ""
}

func (h inHeaders) Set(string, string) {}

func (h inHeaders) Keys() []string {
	ks := make([]string, 0, len(h))
	for _, x := range h {
		ks = append(ks, x.Key)
	}
	return ks
}
