package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
)

var _ queue.Queue = (*AMQPJobQueue)(nil)

// AMQPJobQueue implements the job queue contract on RabbitMQ for
// deployments that run against a local broker instead of SQS. The queue is
// declared durable and messages are published persistent. AMQP has no
// native per-message delay, so deferred jobs rely on the consumer-side
// due check and a nack back to the queue.
type AMQPJobQueue struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string

	mux        sync.Mutex
	deliveries <-chan amqp.Delivery
	leased     map[string]amqp.Delivery
}

// NewAMQPJobQueue dials the broker and declares the durable job queue
func NewAMQPJobQueue(url, queueName string) (*AMQPJobQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial AMQP broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open AMQP channel")
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to declare job queue")
	}

	if err := ch.Qos(50, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrap(err, "failed to set QoS")
	}

	return &AMQPJobQueue{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		leased:    make(map[string]amqp.Delivery),
	}, nil
}

// Enqueue publishes a job as a persistent message
func (q *AMQPJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "failed to marshal job")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    job.ID.String(),
		Headers: amqp.Table{
			"step":       string(job.Step),
			"booking_id": job.BookingID.String(),
		},
		Body: body,
	}

	if err := q.ch.PublishWithContext(ctx,
		"",          // default exchange
		q.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		return errors.Wrap(err, "failed to publish job")
	}

	return nil
}

// Dequeue leases up to max jobs; waits briefly when the queue is idle
func (q *AMQPJobQueue) Dequeue(ctx context.Context, max int) ([]*queue.Job, error) {
	deliveries, err := q.consumeChannel()
	if err != nil {
		return nil, err
	}

	if max < 1 {
		max = 1
	}

	jobs := make([]*queue.Job, 0, max)
	idle := time.NewTimer(5 * time.Second)
	defer idle.Stop()

	for len(jobs) < max {
		select {
		case <-ctx.Done():
			return jobs, ctx.Err()
		case <-idle.C:
			return jobs, nil
		case d, ok := <-deliveries:
			if !ok {
				return jobs, errors.New("deliveries channel closed")
			}

			var job queue.Job
			if err := json.Unmarshal(d.Body, &job); err != nil {
				// Malformed payloads are rejected without requeue so they
				// cannot wedge the queue.
				_ = d.Nack(false, false)
				continue
			}

			receipt := models.GenerateUUID().String()
			job.WithReceipt(receipt)

			q.mux.Lock()
			q.leased[receipt] = d
			q.mux.Unlock()

			jobs = append(jobs, &job)
		}
	}

	return jobs, nil
}

// Ack acknowledges a processed job
func (q *AMQPJobQueue) Ack(ctx context.Context, job *queue.Job) error {
	d, err := q.takeLease(job)
	if err != nil {
		return err
	}
	return errors.Wrap(d.Ack(false), "failed to ack job")
}

// Nack returns a leased job to the queue for redelivery
func (q *AMQPJobQueue) Nack(ctx context.Context, job *queue.Job) error {
	d, err := q.takeLease(job)
	if err != nil {
		return err
	}
	return errors.Wrap(d.Nack(false, true), "failed to nack job")
}

// Close releases the channel and connection
func (q *AMQPJobQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return errors.Wrap(err, "failed to close AMQP channel")
	}
	return errors.Wrap(q.conn.Close(), "failed to close AMQP connection")
}

func (q *AMQPJobQueue) consumeChannel() (<-chan amqp.Delivery, error) {
	q.mux.Lock()
	defer q.mux.Unlock()

	if q.deliveries != nil {
		return q.deliveries, nil
	}

	deliveries, err := q.ch.Consume(
		q.queueName,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume job queue")
	}

	q.deliveries = deliveries
	return deliveries, nil
}

func (q *AMQPJobQueue) takeLease(job *queue.Job) (amqp.Delivery, error) {
	q.mux.Lock()
	defer q.mux.Unlock()

	d, ok := q.leased[job.Receipt()]
	if !ok {
		return amqp.Delivery{}, errors.New("job has no active lease")
	}
	delete(q.leased, job.Receipt())
	return d, nil
}
