package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// Job is a unit of work enqueued for a worker. Delivery is at-least-once:
// consumers must tolerate redelivery and reordering across bookings.
type Job struct {
	ID         models.ID       `json:"id"`
	BookingID  models.ID       `json:"booking_id"`
	Step       saga.StepKind   `json:"step"`
	Payload    json.RawMessage `json:"payload"`
	Attempt    int             `json:"attempt"`
	NotBefore  time.Time       `json:"not_before"`
	EnqueuedAt time.Time       `json:"enqueued_at"`

	// receipt is the broker-specific delivery handle, set on dequeue
	receipt string
}

// NewJob creates a job for a booking step
func NewJob(bookingID models.ID, step saga.StepKind, payload interface{}) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Job{
		ID:         models.GenerateUUID(),
		BookingID:  bookingID,
		Step:       step,
		Payload:    raw,
		Attempt:    1,
		EnqueuedAt: time.Now(),
	}, nil
}

// Retry returns a copy with an incremented attempt count, deferred until
// the backoff delay has elapsed.
func (j *Job) Retry(now time.Time) *Job {
	next := *j
	next.ID = models.GenerateUUID()
	next.Attempt = j.Attempt + 1
	next.NotBefore = now.Add(Backoff(next.Attempt))
	next.EnqueuedAt = now
	next.receipt = ""
	return &next
}

// Due reports whether the job may be executed yet
func (j *Job) Due(now time.Time) bool {
	return !now.Before(j.NotBefore)
}

// Receipt returns the broker delivery handle
func (j *Job) Receipt() string {
	return j.receipt
}

// WithReceipt sets the broker delivery handle
func (j *Job) WithReceipt(receipt string) *Job {
	j.receipt = receipt
	return j
}

// UnmarshalPayload decodes the job payload into the given struct
func (j *Job) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(j.Payload, v)
}

// Queue is the durable at-least-once job queue shared by coordinators and
// workers. A dequeued job is leased to a single consumer until acked,
// nacked, or the broker's visibility window lapses.
type Queue interface {
	Enqueue(ctx context.Context, job *Job) error
	Dequeue(ctx context.Context, max int) ([]*Job, error)
	Ack(ctx context.Context, job *Job) error
	Nack(ctx context.Context, job *Job) error
}

const (
	baseBackoff = 2 * time.Second
	maxBackoff  = 5 * time.Minute
)

// Backoff returns the exponential delay before the given attempt
func Backoff(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delay := baseBackoff
	for i := 2; i < attempt; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
