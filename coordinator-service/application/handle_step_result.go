package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
	"github.com/ticketflow/booking-system/shared/telemetry"
)

// StepResultCommand is a worker's report of one step outcome. Delivered
// at-least-once; the handler must absorb duplicates.
type StepResultCommand struct {
	BookingID  string `json:"booking_id"`
	Step       string `json:"step"`
	Succeeded  bool   `json:"succeeded"`
	Reference  string `json:"reference,omitempty"`
	ReasonCode string `json:"reason_code,omitempty"`
	Message    string `json:"message,omitempty"`
	Attempt    int    `json:"attempt,omitempty"`
}

// HandleStepResult use case: feed a step outcome through the state machine,
// persist the new state, then dispatch whatever the new state requires.
// Persistence strictly precedes enqueueing so a crash never produces a job
// for a transition that was not recorded.
type HandleStepResult struct {
	bookingRepository domain.BookingRepository
	sagaRepository    domain.SagaRepository
	jobQueue          queue.Queue
	transitionLog     events.TransitionLog
	eventPublisher    events.Publisher
	policy            SagaPolicy
}

// NewHandleStepResult creates a new HandleStepResult use case
func NewHandleStepResult(
	bookingRepository domain.BookingRepository,
	sagaRepository domain.SagaRepository,
	jobQueue queue.Queue,
	transitionLog events.TransitionLog,
	eventPublisher events.Publisher,
	policy SagaPolicy,
) *HandleStepResult {
	return &HandleStepResult{
		bookingRepository: bookingRepository,
		sagaRepository:    sagaRepository,
		jobQueue:          jobQueue,
		transitionLog:     transitionLog,
		eventPublisher:    eventPublisher,
		policy:            policy,
	}
}

// Execute executes the handle step result use case. A version conflict on
// save means another coordinator advanced the same saga concurrently; the
// handler re-reads once and re-applies, which resolves the race either into
// a duplicate no-op or a fresh transition.
func (uc *HandleStepResult) Execute(ctx context.Context, cmd *StepResultCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "HandleStepResult.Execute")
	defer span.End()

	bookingID, err := models.NewID(cmd.BookingID)
	if err != nil {
		return &domain.UnknownJobError{BookingID: cmd.BookingID, Step: cmd.Step}
	}

	step := saga.StepKind(cmd.Step)
	switch step {
	case saga.StepReserve, saga.StepCharge, saga.StepRelease:
	case saga.StepRefund, saga.StepNotify:
		// Refund and notify outcomes never drive saga transitions.
		telemetry.RecordCounter(ctx, "step_results_acknowledged_total", "Step results with no transition", 1,
			attribute.String("step", cmd.Step),
		)
		return nil
	default:
		return &domain.UnknownJobError{BookingID: cmd.BookingID, Step: cmd.Step}
	}

	var conflict error
	for attempt := 0; attempt < 2; attempt++ {
		conflict = uc.apply(ctx, bookingID, step, cmd)
		if !errors.Is(conflict, domain.ErrVersionConflict) {
			return conflict
		}
	}
	return errors.Wrap(conflict, "saga update kept conflicting")
}

func (uc *HandleStepResult) apply(ctx context.Context, bookingID models.ID, step saga.StepKind, cmd *StepResultCommand) error {
	instance, err := uc.sagaRepository.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrSagaNotFound) {
			return &domain.UnknownJobError{BookingID: cmd.BookingID, Step: cmd.Step}
		}
		return errors.Wrap(err, "failed to load saga instance")
	}

	booking, err := uc.bookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return &domain.UnknownJobError{BookingID: cmd.BookingID, Step: cmd.Step}
		}
		return errors.Wrap(err, "failed to load booking")
	}

	// A charge confirmation landing after compensation began means money
	// moved for a booking that will not confirm. Refund it, never re-drive
	// the saga with it.
	if step == saga.StepCharge && cmd.Succeeded && instance.Compensating {
		return uc.dispatchRefund(ctx, booking, cmd.Reference)
	}

	event, ok := saga.ResultEvent(step, cmd.Succeeded)
	if !ok {
		return nil
	}

	detail := cmd.Reference
	if !cmd.Succeeded {
		detail = cmd.ReasonCode
	}

	// A redelivered failure report must be absorbed before the budget check:
	// release_failed loops back into Compensating, so admissibility alone
	// cannot tell a duplicate from a fresh failure.
	if cmd.Attempt > 0 && instance.SeenResult(event, cmd.Attempt) {
		telemetry.RecordCounter(ctx, "duplicate_step_results_total", "Duplicate step results absorbed", 1,
			attribute.String("step", cmd.Step),
		)
		return nil
	}

	// A failed release re-dispatches until its budget is spent, then the saga
	// escalates to the operator instead of looping forever. The reconcile
	// sweep cannot catch this case: every reported failure restarts the step
	// clock, so a promptly failing release never looks stalled.
	escalated := false
	if event == saga.EventReleaseFailed &&
		instance.AttemptCount(saga.StepRelease) >= uc.policy.BudgetFor(saga.StepRelease) {
		event = saga.EventReleaseExhausted
		detail = domain.ReasonDeadLetter
		escalated = true
	}

	now := time.Now()
	applied, err := instance.ApplyResult(event, detail, cmd.Attempt, now)
	if err != nil {
		return err
	}
	if !applied {
		telemetry.RecordCounter(ctx, "duplicate_step_results_total", "Duplicate step results absorbed", 1,
			attribute.String("step", cmd.Step),
		)
		return nil
	}

	// Reserved holds no work of its own; charging starts immediately.
	if followUp, ok := saga.FollowUp(instance.State); ok {
		if _, err := instance.Apply(followUp, "", now); err != nil {
			return errors.Wrap(err, "failed to apply follow-up event")
		}
	}

	if err := booking.MoveTo(instance.State, reasonFor(event, cmd.ReasonCode)); err != nil {
		return errors.Wrap(err, "failed to move booking")
	}

	jobs := make([]*queue.Job, 0, 2)
	if nextStep, ok := instance.CurrentStep(); ok {
		job, err := buildStepJob(booking, instance, nextStep)
		if err != nil {
			return err
		}
		attempt := instance.RecordAttempt(nextStep)
		job.Attempt = attempt
		job.NotBefore = now.Add(queue.Backoff(attempt))
		jobs = append(jobs, job)
	}
	if booking.State.Terminal() {
		job, err := buildStepJob(booking, instance, saga.StepNotify)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	if err := uc.bookingRepository.Save(ctx, booking); err != nil {
		return err
	}
	if err := uc.sagaRepository.Save(ctx, instance); err != nil {
		return err
	}

	logged := booking.Events()
	if escalated {
		logged = append(logged, events.NewEvent(booking.ID, events.BookingDeadLetterEvent, DeadLetterData{
			BookingID: booking.ID.String(),
			Step:      string(saga.StepRelease),
			Attempts:  instance.AttemptCount(saga.StepRelease),
		}))
	}

	// A release failure under budget loops the saga in place; the booking
	// emits nothing and there is nothing to log or publish.
	if len(logged) > 0 {
		if err := uc.transitionLog.Append(ctx, booking.ID, logged); err != nil {
			return errors.Wrap(err, "failed to append transition log")
		}
		if err := uc.eventPublisher.Publish(ctx, logged...); err != nil {
			return errors.Wrap(err, "failed to publish events")
		}
		booking.ClearEvents()
	}

	for _, job := range jobs {
		if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
			return errors.Wrapf(err, "failed to enqueue %s job", job.Step)
		}
	}

	telemetry.RecordCounter(ctx, "saga_transitions_total", "Applied saga transitions", 1,
		attribute.String("event", string(event)),
		attribute.String("to_state", string(instance.State)),
	)

	return nil
}

func (uc *HandleStepResult) dispatchRefund(ctx context.Context, booking *domain.Booking, chargeRef string) error {
	if chargeRef == "" {
		return errors.Errorf("stray charge success without reference for booking %s", booking.ID)
	}

	job, err := queue.NewJob(booking.ID, saga.StepRefund, queue.RefundPayload{
		ChargeRef: chargeRef,
		Amount:    booking.Amount,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build refund job")
	}

	marker := events.NewEvent(booking.ID, events.StepCompletedEvent, StepResultCommand{
		BookingID: booking.ID.String(),
		Step:      string(saga.StepCharge),
		Succeeded: true,
		Reference: chargeRef,
	}).WithMetadata("refund", "dispatched")

	if err := uc.transitionLog.Append(ctx, booking.ID, []*events.Event{marker}); err != nil {
		return errors.Wrap(err, "failed to record stray charge")
	}

	if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
		return errors.Wrap(err, "failed to enqueue refund job")
	}

	telemetry.RecordCounter(ctx, "stray_charges_refunded_total", "Charges refunded after compensation began", 1)
	return nil
}

// reasonFor maps a failure event to the reason code surfaced on the booking
func reasonFor(event saga.EventKind, reported string) string {
	switch event {
	case saga.EventReserveFailed:
		if reported != "" {
			return reported
		}
		return domain.ReasonSeatsUnavailable
	case saga.EventChargeFailed:
		if reported != "" {
			return reported
		}
		return domain.ReasonPaymentDeclined
	case saga.EventReleaseExhausted:
		return domain.ReasonDeadLetter
	default:
		return ""
	}
}
