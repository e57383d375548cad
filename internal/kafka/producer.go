package kafka

import (
	"context"
	"encoding/json"

	"ticket-store/internal/config"
	"ticket-store/internal/models"

	"github.com/segmentio/kafka-go"
)

// Producer streams order lifecycle events. One writer per lifecycle topic;
// publishing is fire-and-forget from the caller's point of view.
type Producer struct {
	created   *kafka.Writer
	paid      *kafka.Writer
	cancelled *kafka.Writer
}

func NewProducer(brokers []string, topics config.TopicConfig) *Producer {
	writer := func(topic string) *kafka.Writer {
		return kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   topic,
		})
	}
	return &Producer{
		created:   writer(topics.OrderCreated),
		paid:      writer(topics.OrderPaid),
		cancelled: writer(topics.OrderCancelled),
	}
}

func (p *Producer) publish(w *kafka.Writer, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return w.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
}

func (p *Producer) PublishOrderCreated(order models.Order) error {
	return p.publish(p.created, order)
}

// PublishOrderUpdated reuses the created topic; consumers distinguish by the
// order's payment status.
func (p *Producer) PublishOrderUpdated(order models.Order) error {
	return p.publish(p.created, order)
}

func (p *Producer) PublishOrderPaid(order models.Order) error {
	return p.publish(p.paid, order)
}

func (p *Producer) PublishOrderCancelled(order models.Order) error {
	return p.publish(p.cancelled, order)
}

func (p *Producer) Close() {
	p.created.Close()
	p.paid.Close()
	p.cancelled.Close()
}
