package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	order_kafka "foodorder/internal/adapters/out/kafka"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

var _ order_kafka.MessageWriter = (*MockMessageWriter)(nil)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "ext", "addr", order.Cash,
		time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestProducer_Publish(t *testing.T) {
	t.Run("writes one keyed message per event in a single batch", func(t *testing.T) {
		writer := new(MockMessageWriter)
		producer := order_kafka.NewProducerWithWriter(writer, "order.events")
		first, second := newOrder(t), newOrder(t)
		require.NoError(t, second.Cancel(second.CreatedAt().Add(21*time.Minute)))

		var written []kafka.Message
		writer.On("WriteMessages", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
			Return(nil).Once()

		err := producer.Publish(context.Background(),
			order.NewEvent(order.EventPlaced, first),
			order.NewEvent(order.EventExpired, second),
		)

		require.NoError(t, err)
		writer.AssertExpectations(t)
		require.Len(t, written, 2)
		assert.Equal(t, first.ID().String(), string(written[0].Key))
		assert.Equal(t, second.ID().String(), string(written[1].Key))

		var payload order_kafka.EventMessage
		require.NoError(t, json.Unmarshal(written[1].Value, &payload))
		assert.Equal(t, "order.expired", payload.Type)
		assert.Equal(t, second.ID().String(), payload.OrderID)
		assert.Equal(t, second.UserID().String(), payload.UserID)
		assert.Equal(t, second.FoodID().String(), payload.FoodID)
		assert.Equal(t, "canceled", payload.Status)
		assert.True(t, second.UpdatedAt().Equal(payload.OccurredAt))
	})

	t.Run("no events writes nothing", func(t *testing.T) {
		writer := new(MockMessageWriter)
		producer := order_kafka.NewProducerWithWriter(writer, "order.events")

		require.NoError(t, producer.Publish(context.Background()))
		writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("returns writer failure", func(t *testing.T) {
		writer := new(MockMessageWriter)
		producer := order_kafka.NewProducerWithWriter(writer, "order.events")
		brokerDown := errors.New("dial tcp: connection refused")
		writer.On("WriteMessages", mock.Anything, mock.Anything).Return(brokerDown)

		err := producer.Publish(context.Background(), order.NewEvent(order.EventPlaced, newOrder(t)))

		require.ErrorIs(t, err, brokerDown)
	})

	t.Run("injects trace context into headers", func(t *testing.T) {
		prevProvider, prevPropagator := otel.GetTracerProvider(), otel.GetTextMapPropagator()
		t.Cleanup(func() {
			otel.SetTracerProvider(prevProvider)
			otel.SetTextMapPropagator(prevPropagator)
		})
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.TraceContext{})

		writer := new(MockMessageWriter)
		producer := order_kafka.NewProducerWithWriter(writer, "order.events")
		var written []kafka.Message
		writer.On("WriteMessages", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
			Return(nil)

		require.NoError(t, producer.Publish(context.Background(), order.NewEvent(order.EventPlaced, newOrder(t))))

		require.Len(t, written, 1)
		assert.NotEmpty(t, order_kafka.NewHeaderCarrier(&written[0]).Get("traceparent"))
	})
}

func TestProducer_Close(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("Close").Return(nil).Once()

	require.NoError(t, order_kafka.NewProducerWithWriter(writer, "order.events").Close())
	writer.AssertExpectations(t)
}

func TestHeaderCarrier(t *testing.T) {
	msg := kafka.Message{Headers: []kafka.Header{
		{Key: "Traceparent", Value: []byte("stale")},
		{Key: "traceparent", Value: []byte("stale-too")},
		{Key: "event-type", Value: []byte("order.placed")},
	}}
	carrier := order_kafka.NewHeaderCarrier(&msg)

	carrier.Set("traceparent", "a")
	carrier.Set("tracestate", "b")
	carrier.Set("TRACESTATE", "c")

	assert.Equal(t, "a", carrier.Get("TraceParent"))
	assert.Equal(t, "c", carrier.Get("tracestate"))
	assert.Empty(t, carrier.Get("baggage"))
	assert.ElementsMatch(t, []string{"event-type", "traceparent", "TRACESTATE"}, carrier.Keys())
	assert.Len(t, msg.Headers, 3)
}
