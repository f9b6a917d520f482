package executors

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// ReserveExecutor holds seats with the reservation service. The collaborator
// dedupes by booking, so the executor only has to keep the recorded
// reference stable across redeliveries.
type ReserveExecutor struct {
	reservations ReservationClient
	store        IdempotencyStore
}

// NewReserveExecutor creates a new ReserveExecutor
func NewReserveExecutor(reservations ReservationClient, store IdempotencyStore) *ReserveExecutor {
	return &ReserveExecutor{reservations: reservations, store: store}
}

// Step returns the step kind this executor handles
func (e *ReserveExecutor) Step() saga.StepKind {
	return saga.StepReserve
}

// Execute executes the reserve step
func (e *ReserveExecutor) Execute(ctx context.Context, job *queue.Job) (*Result, error) {
	key := queue.IdempotencyKey(job.BookingID, saga.StepReserve)

	record, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}
	if record != nil && record.Applied {
		return &Result{Outcome: OutcomeSuccess, Reference: record.Reference}, nil
	}

	var payload queue.ReservePayload
	if err := job.UnmarshalPayload(&payload); err != nil {
		return &Result{Outcome: OutcomePermanent, ReasonCode: "bad_payload", Message: err.Error()}, nil
	}

	if _, err := e.store.Claim(ctx, key); err != nil {
		return nil, errors.Wrap(err, "failed to claim idempotency key")
	}

	ref, err := e.reservations.Reserve(ctx, ReserveRequest{
		BookingID:   job.BookingID,
		EventID:     payload.EventID,
		UserID:      payload.UserID,
		Seats:       payload.Seats,
		SeatNumbers: payload.SeatNumbers,
	})
	if err != nil {
		return classify(err), nil
	}

	if err := e.store.Record(ctx, key, ref); err != nil {
		return nil, errors.Wrap(err, "failed to record reservation")
	}

	return &Result{Outcome: OutcomeSuccess, Reference: ref}, nil
}
