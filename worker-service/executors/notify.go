package executors

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// NotifyExecutor fans the booking outcome out to the notification service.
// Deduped so redelivery does not spam the user; failures retry on the job
// budget and never hold a terminal booking hostage.
type NotifyExecutor struct {
	notifications NotificationClient
	store         IdempotencyStore
}

// NewNotifyExecutor creates a new NotifyExecutor
func NewNotifyExecutor(notifications NotificationClient, store IdempotencyStore) *NotifyExecutor {
	return &NotifyExecutor{notifications: notifications, store: store}
}

// Step returns the step kind this executor handles
func (e *NotifyExecutor) Step() saga.StepKind {
	return saga.StepNotify
}

// Execute executes the notify step
func (e *NotifyExecutor) Execute(ctx context.Context, job *queue.Job) (*Result, error) {
	key := queue.IdempotencyKey(job.BookingID, saga.StepNotify)

	record, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}
	if record != nil && record.Applied {
		return &Result{Outcome: OutcomeSuccess}, nil
	}

	var payload queue.NotifyPayload
	if err := job.UnmarshalPayload(&payload); err != nil {
		return &Result{Outcome: OutcomePermanent, ReasonCode: "bad_payload", Message: err.Error()}, nil
	}

	if _, err := e.store.Claim(ctx, key); err != nil {
		return nil, errors.Wrap(err, "failed to claim idempotency key")
	}

	err = e.notifications.Send(ctx, Notification{
		BookingID:  job.BookingID,
		UserID:     payload.UserID,
		EventID:    payload.EventID,
		State:      string(payload.State),
		ReasonCode: payload.ReasonCode,
		Seats:      payload.Seats,
		Amount:     payload.Amount,
	})
	if err != nil {
		return classify(err), nil
	}

	if err := e.store.Record(ctx, key, ""); err != nil {
		return nil, errors.Wrap(err, "failed to record notification")
	}

	return &Result{Outcome: OutcomeSuccess}, nil
}
