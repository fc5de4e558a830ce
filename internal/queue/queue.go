// Package queue carries scoring work from the API to the worker pool and
// pushes per-submission status updates out to subscribers.
package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	ScoringQueue    = "scoring_tasks"
	UpdatesExchange = "submission_updates"
)

// ScoringTask is the message the API publishes when a submission is accepted.
type ScoringTask struct {
	SubmissionID  uint   `json:"submission_id"`
	PostingID     uint   `json:"posting_id"`
	ReferenceCode string `json:"reference_code"`
}

// StatusUpdate is pushed to the updates exchange as the worker progresses.
type StatusUpdate struct {
	ReferenceCode string    `json:"reference_code"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
}

type Publisher struct {
	conn *amqp.Connection
}

func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishScoringTask puts a task on the durable scoring queue.
func (p *Publisher) PublishScoringTask(task ScoringTask) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		ScoringQueue, // queue name
		true,         // durable (survives broker restarts)
		false,        // auto-delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	return ch.Publish(
		"",           // default exchange
		ScoringQueue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// PublishStatusUpdate sends a progress event for one submission. Routing key
// is submission.<reference>, so clients can bind to just their own updates.
func (p *Publisher) PublishStatusUpdate(update StatusUpdate) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		UpdatesExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, _ := json.Marshal(update)
	routingKey := fmt.Sprintf("submission.%s", update.ReferenceCode)

	return ch.Publish(
		UpdatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// TaskHandler processes one scoring task. Returning an error marks the task
// failed; the consumer never crashes on a bad message.
type TaskHandler func(task ScoringTask) error

// StartConsumerPool runs n workers consuming the scoring queue until the
// connection closes.
func StartConsumerPool(url string, n int, handler TaskHandler) {
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		log.Println("worker id", i+1, "started")
		go consume(i+1, url, handler, &wg)
	}
	wg.Wait()
}

func consume(id int, url string, handler TaskHandler, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatal("error dialling rabbitmq: " + err.Error())
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error opening rabbitmq channel: " + err.Error())
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(ScoringQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		ScoringQueue, // queue name
		"",           // consumer tag
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq messages: " + err.Error())
	}

	for msg := range msgs {
		var task ScoringTask
		if err := json.Unmarshal(msg.Body, &task); err != nil {
			log.Printf("worker %d: error unmarshalling task body: %v", id, err)
			continue
		}
		log.Printf("worker %d processing submission %s", id, task.ReferenceCode)

		if err := handler(task); err != nil {
			log.Printf("worker %d: scoring failed for %s: %v", id, task.ReferenceCode, err)
		}
	}
}
