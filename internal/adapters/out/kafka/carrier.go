package kafka

import (
	"slices"
	"strings"

	"github.com/segmentio/kafka-go"
)

// HeaderCarrier lets an otel propagator read and write trace context on an
// event message. Keys compare case-insensitively; Set leaves exactly one header
// per key.
type HeaderCarrier struct {
	msg *kafka.Message
}

func NewHeaderCarrier(msg *kafka.Message) HeaderCarrier {
	return HeaderCarrier{msg: msg}
}

func (c HeaderCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if strings.EqualFold(h.Key, key) {
			return string(h.Value)
		}
	}
	return ""
}

func (c HeaderCarrier) Set(key, value string) {
	c.msg.Headers = slices.DeleteFunc(c.msg.Headers, func(h kafka.Header) bool {
		return strings.EqualFold(h.Key, key)
	})
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
