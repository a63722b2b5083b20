package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// WelcomeNotifier greets a freshly converted customer.
type WelcomeNotifier interface {
	SendWelcome(to, contact, company string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier WelcomeNotifier
}

func NewWorker(ch *amqp.Channel, notifier WelcomeNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		logrus.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event ConversionEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				logrus.Errorf("❌ [worker] invalid JSON: %s", err)
				// Poison message. Reject without requeue so it dead-letters
				// instead of jamming the queue.
				d.Nack(false, false)
				continue
			}

			logrus.Infof("📥 [worker] conversion event for lead %d (customer %d)", event.LeadID, event.CustomerID)

			if err := w.processEvent(event); err != nil {
				logrus.Errorf("❌ [worker] welcome delivery failed for customer %d: %s", event.CustomerID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	logrus.Infof(" [*] worker waiting for conversion events on '%s'", queueName)
	<-forever
}

func (w *Worker) processEvent(event ConversionEvent) error {
	if event.Email == "" {
		// Nothing to greet; acknowledge and move on.
		logrus.Infof("⚠️ [worker] customer %d has no email, skipping welcome", event.CustomerID)
		return nil
	}

	if err := w.Notifier.SendWelcome(event.Email, event.Contact, event.Company); err != nil {
		return err
	}

	logrus.Infof("✅ [worker] welcome sent to %s (%s)", event.Contact, event.Company)
	return nil
}
