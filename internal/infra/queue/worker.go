package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier is the contract the worker needs to tell an owner about a finished
// import. Satisfied by the mail sender.
type Notifier interface {
	SendImportSummary(to, name string, successCount, failedCount int) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
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
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ImportSummaryPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] import summary for %s: %d ok, %d failed",
				payload.UserID, payload.SuccessCount, payload.FailedCount)

			if payload.UserEmail == "" {
				d.Ack(false)
				continue
			}

			if err := w.Notifier.SendImportSummary(
				payload.UserEmail, payload.UserName,
				payload.SuccessCount, payload.FailedCount,
			); err != nil {
				log.Printf("[WORKER] failed to send summary email: %s", err)
				d.Nack(false, false) // goes to the DLQ
				continue
			}

			d.Ack(false)
		}
	}()

	log.Printf("[WORKER] waiting for import summaries on %s", queueName)
	<-forever
}
