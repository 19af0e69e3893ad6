package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesanos-be/internal/metrics"
	"artesanos-be/internal/order"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleDetails() *order.Details {
	cartID := int64(3)
	return &order.Details{
		ID:            42,
		OrderNumber:   "ORD-20260831120000-123",
		CustomerID:    7,
		CartID:        &cartID,
		Status:        "pending",
		PaymentStatus: "pending",
		Subtotal:      33.25,
		Tax:           2.50,
		ShippingCost:  5.00,
		Total:         40.75,
		Currency:      "USD",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Items: []order.DetailItem{
			{OrderItemID: 1, ProductID: 10, SKU: "MUG-01", Name: "Mug", Quantity: 2, UnitPrice: 9.50, LineTotal: 19.00},
		},
	}
}

func TestEmitter_PublishOrderCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("PublishesKeyedPayload", func(t *testing.T) {
		writer := &fakeWriter{}
		engine := metrics.NewEngine()
		e := &Emitter{cfg: Config{Enabled: true, Topic: "order.created"}, writer: writer, engine: engine}

		e.PublishOrderCreated(ctx, sampleDetails())

		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "ORD-20260831120000-123", string(msg.Key))

		require.Len(t, msg.Headers, 1)
		assert.Equal(t, "x-event-type", msg.Headers[0].Key)
		assert.Equal(t, EventOrderCreated, string(msg.Headers[0].Value))

		var event OrderCreatedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		assert.Equal(t, EventOrderCreated, event.EventType)
		assert.Equal(t, int64(42), event.OrderID)
		assert.Equal(t, 40.75, event.Total)
		assert.Equal(t, "ada@example.com", event.Customer.Email)
		require.Len(t, event.Items, 1)
		assert.Equal(t, "MUG-01", event.Items[0].SKU)
		assert.False(t, event.GeneratedAt.IsZero())

		assert.Equal(t, uint64(1), engine.EventsPublished.Load())
		assert.Equal(t, uint64(0), engine.EventsDropped.Load())
	})

	t.Run("BrokerFailureIsSwallowed", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("broker unreachable")}
		engine := metrics.NewEngine()
		e := &Emitter{cfg: Config{Enabled: true, Topic: "order.created"}, writer: writer, engine: engine}

		// Must not panic and must not surface the error to the caller.
		e.PublishOrderCreated(ctx, sampleDetails())

		assert.Empty(t, writer.messages)
		assert.Equal(t, uint64(0), engine.EventsPublished.Load())
		assert.Equal(t, uint64(1), engine.EventsDropped.Load())
	})

	t.Run("DisabledIsNoOp", func(t *testing.T) {
		engine := metrics.NewEngine()
		e := NewEmitter(Config{Enabled: false}, engine)

		e.PublishOrderCreated(ctx, sampleDetails())

		assert.Equal(t, uint64(0), engine.EventsPublished.Load())
		assert.Equal(t, uint64(0), engine.EventsDropped.Load())
		assert.NoError(t, e.Close())
	})

	t.Run("CloseClosesWriter", func(t *testing.T) {
		writer := &fakeWriter{}
		e := &Emitter{cfg: Config{Enabled: true}, writer: writer, engine: metrics.NewEngine()}

		require.NoError(t, e.Close())
		assert.True(t, writer.closed)
	})
}
