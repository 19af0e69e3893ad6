package notification

import (
	"context"
	"encoding/json"
	"time"

	"artesanos-be/internal/logger"
	"artesanos-be/internal/metrics"
	"artesanos-be/internal/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// publishTimeout bounds the post-commit publish so a broker outage cannot
// stall the request.
const publishTimeout = 3 * time.Second

// Config carries the broker settings; an explicit struct instead of global
// constants so tests and disabled environments stay trivial.
type Config struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Emitter publishes order integration events. Every failure path is logged
// and dropped: a committed sale must never look failed because of the broker.
type Emitter struct {
	cfg    Config
	writer messageWriter
	engine *metrics.Engine
}

func NewEmitter(cfg Config, engine *metrics.Engine) *Emitter {
	e := &Emitter{cfg: cfg, engine: engine}

	if cfg.Enabled {
		e.writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		}
	}

	return e
}

// PublishOrderCreated hands the order to the broker, keyed by order number so
// events for one order keep their relative order. It never returns an error:
// failures are logged and counted, nothing more.
func (e *Emitter) PublishOrderCreated(ctx context.Context, d *order.Details) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "notification"),
		zap.String("method", "PublishOrderCreated"),
		zap.String("order_number", d.OrderNumber),
	)

	if !e.cfg.Enabled || e.writer == nil {
		log.Debug("event publishing disabled, skipping")
		return
	}

	payload, err := json.Marshal(buildOrderCreatedEvent(d))
	if err != nil {
		e.engine.EventsDropped.Inc()
		log.Error("failed to marshal order event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(d.OrderNumber),
		Value: payload,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		},
	})
	if err != nil {
		e.engine.EventsDropped.Inc()
		log.Error("failed to publish order event", zap.Error(err))
		return
	}

	e.engine.EventsPublished.Inc()
	log.Debug("order event published")
}

func (e *Emitter) Close() error {
	if e.writer == nil {
		return nil
	}
	return e.writer.Close()
}

func buildOrderCreatedEvent(d *order.Details) OrderCreatedEvent {
	items := make([]ItemPayload, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, ItemPayload{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}

	return OrderCreatedEvent{
		EventType:     EventOrderCreated,
		OrderID:       d.ID,
		OrderNumber:   d.OrderNumber,
		Total:         d.Total,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Shipping:      d.ShippingCost,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		Customer: CustomerPayload{
			ID:        d.CustomerID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Email:     d.Email,
		},
		Items:       items,
		GeneratedAt: time.Now().UTC(),
	}
}
