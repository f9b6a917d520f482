package executors

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// ChargeExecutor moves money, at most once per booking. The local store and
// the collaborator-side idempotency key guard the same invariant from both
// ends: a claim without a record is resolved by asking the payment service
// whether the charge landed, never by charging again blindly.
type ChargeExecutor struct {
	payments PaymentClient
	store    IdempotencyStore
}

// NewChargeExecutor creates a new ChargeExecutor
func NewChargeExecutor(payments PaymentClient, store IdempotencyStore) *ChargeExecutor {
	return &ChargeExecutor{payments: payments, store: store}
}

// Step returns the step kind this executor handles
func (e *ChargeExecutor) Step() saga.StepKind {
	return saga.StepCharge
}

// Execute executes the charge step
func (e *ChargeExecutor) Execute(ctx context.Context, job *queue.Job) (*Result, error) {
	key := queue.IdempotencyKey(job.BookingID, saga.StepCharge)

	record, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}
	if record != nil && record.Applied {
		return &Result{Outcome: OutcomeSuccess, Reference: record.Reference}, nil
	}

	var payload queue.ChargePayload
	if err := job.UnmarshalPayload(&payload); err != nil {
		return &Result{Outcome: OutcomePermanent, ReasonCode: "bad_payload", Message: err.Error()}, nil
	}

	claimed, err := e.store.Claim(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim idempotency key")
	}
	if !claimed {
		// Someone claimed before us and never recorded: a crash mid-call.
		// The collaborator knows whether the money moved.
		ref, applied, err := e.payments.Lookup(ctx, payload.IdempotencyKey)
		if err != nil {
			return classify(err), nil
		}
		if applied {
			if err := e.store.Record(ctx, key, ref); err != nil {
				return nil, errors.Wrap(err, "failed to record recovered charge")
			}
			return &Result{Outcome: OutcomeSuccess, Reference: ref}, nil
		}
	}

	ref, err := e.payments.Charge(ctx, ChargeRequest{
		BookingID:      job.BookingID,
		UserID:         payload.UserID,
		Amount:         payload.Amount,
		IdempotencyKey: payload.IdempotencyKey,
	})
	if err != nil {
		return classify(err), nil
	}

	if err := e.store.Record(ctx, key, ref); err != nil {
		return nil, errors.Wrap(err, "failed to record charge")
	}

	return &Result{Outcome: OutcomeSuccess, Reference: ref}, nil
}
