package executors

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
)

// RefundExecutor returns money for a charge that landed after compensation
// began. Keyed like charge so a redelivered refund job pays back once.
type RefundExecutor struct {
	payments PaymentClient
	store    IdempotencyStore
}

// NewRefundExecutor creates a new RefundExecutor
func NewRefundExecutor(payments PaymentClient, store IdempotencyStore) *RefundExecutor {
	return &RefundExecutor{payments: payments, store: store}
}

// Step returns the step kind this executor handles
func (e *RefundExecutor) Step() saga.StepKind {
	return saga.StepRefund
}

// Execute executes the refund step
func (e *RefundExecutor) Execute(ctx context.Context, job *queue.Job) (*Result, error) {
	key := queue.IdempotencyKey(job.BookingID, saga.StepRefund)

	record, err := e.store.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}
	if record != nil && record.Applied {
		return &Result{Outcome: OutcomeSuccess, Reference: record.Reference}, nil
	}

	var payload queue.RefundPayload
	if err := job.UnmarshalPayload(&payload); err != nil {
		return &Result{Outcome: OutcomePermanent, ReasonCode: "bad_payload", Message: err.Error()}, nil
	}

	if _, err := e.store.Claim(ctx, key); err != nil {
		return nil, errors.Wrap(err, "failed to claim idempotency key")
	}

	ref, err := e.payments.Refund(ctx, payload.ChargeRef, payload.Amount)
	if err != nil {
		return classify(err), nil
	}

	if err := e.store.Record(ctx, key, ref); err != nil {
		return nil, errors.Wrap(err, "failed to record refund")
	}

	return &Result{Outcome: OutcomeSuccess, Reference: ref}, nil
}
