package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConversionEvent is the wire record of a lead turning into a customer.
// It carries everything a downstream consumer needs so none of them have to
// call back into the directory.
type ConversionEvent struct {
	EventID    string `json:"event_id"`
	LeadID     int64  `json:"lead_id"`
	CustomerID int64  `json:"customer_id"`

	Company string `json:"company"`
	Contact string `json:"contact"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Score   int    `json:"score"`

	OwnerID    *int64 `json:"owner_id,omitempty"`
	ApproverID *int64 `json:"approver_id,omitempty"`

	Origin      string    `json:"origin"` // API or CONSOLE
	ConvertedAt time.Time `json:"converted_at"`
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishConversion(ctx context.Context, event ConversionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode conversion event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish conversion event: %w", err)
	}

	return nil
}
