package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	domorder "example.com/product-catalog/internal/domain/order"
)

// Producer emits order lifecycle events, keyed by user so one user's orders
// stay in partition order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

type orderPlacedEvent struct {
	Type          string    `json:"type"`
	OrderID       string    `json:"order_id"`
	UserID        int64     `json:"user_id"`
	TotalPrice    string    `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	PlacedAt      time.Time `json:"placed_at"`
}

func (p *Producer) OrderPlaced(ctx context.Context, o *domorder.Order) error {
	event := orderPlacedEvent{
		Type:          "order.placed",
		OrderID:       o.ID,
		UserID:        o.UserID,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		PaymentMethod: string(o.PaymentMethod),
		PlacedAt:      o.CreatedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(o.UserID, 10)),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
