package executors

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// ReleaseExecutor frees held seats during compensation. Releasing a
// reservation the collaborator no longer knows counts as success: the seats
// are free either way.
type ReleaseExecutor struct {
	reservations ReservationClient
	store        IdempotencyStore
}

// NewReleaseExecutor creates a new ReleaseExecutor
func NewReleaseExecutor(reservations ReservationClient, store IdempotencyStore) *ReleaseExecutor {
	return &ReleaseExecutor{reservations: reservations, store: store}
}

// Step returns the step kind this executor handles
func (e *ReleaseExecutor) Step() saga.StepKind {
	return saga.StepRelease
}

// Execute executes the release step
func (e *ReleaseExecutor) Execute(ctx context.Context, job *queue.Job) (*Result, error) {
	key := queue.IdempotencyKey(job.BookingID, saga.StepRelease)

	record, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}
	if record != nil && record.Applied {
		return &Result{Outcome: OutcomeSuccess, Reference: record.Reference}, nil
	}

	var payload queue.ReleasePayload
	if err := job.UnmarshalPayload(&payload); err != nil {
		return &Result{Outcome: OutcomePermanent, ReasonCode: "bad_payload", Message: err.Error()}, nil
	}

	if _, err := e.store.Claim(ctx, key); err != nil {
		return nil, errors.Wrap(err, "failed to claim idempotency key")
	}

	err = e.reservations.Release(ctx, payload.ReservationRef, payload.EventID, job.BookingID)
	if err != nil {
		var permanent *PermanentError
		if errors.As(err, &permanent) && permanent.ReasonCode == "not_found" {
			// Already released, or nothing was ever held.
		} else {
			return classify(err), nil
		}
	}

	if err := e.store.Record(ctx, key, payload.ReservationRef); err != nil {
		return nil, errors.Wrap(err, "failed to record release")
	}

	return &Result{Outcome: OutcomeSuccess, Reference: payload.ReservationRef}, nil
}
