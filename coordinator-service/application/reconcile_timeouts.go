package application

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/queue"
	"github.com/ticketflow/booking-system/shared/saga"
	"github.com/ticketflow/booking-system/shared/telemetry"
)

// ReconcileReport summarizes one reconcile sweep
type ReconcileReport struct {
	Requeued int
	Failed   int
	Skipped  int
}

// DeadLetterData records a step that exhausted its attempt budget
type DeadLetterData struct {
	BookingID string `json:"booking_id"`
	Step      string `json:"step"`
	Attempts  int    `json:"attempts"`
}

// ReconcileTimeouts use case: sweep non-terminal sagas whose step clock has
// lapsed. A stalled step under budget is re-dispatched with backoff; one over
// budget is failed through the state machine, which routes reserve timeouts
// to Cancelled, charge timeouts to Compensating and release timeouts to
// ManualReview. This sweep is also the recovery path for a coordinator that
// crashed between persisting a transition and enqueueing its job.
type ReconcileTimeouts struct {
	bookingRepository domain.BookingRepository
	sagaRepository    domain.SagaRepository
	jobQueue          queue.Queue
	transitionLog     events.TransitionLog
	eventPublisher    events.Publisher
	policy            SagaPolicy
}

// NewReconcileTimeouts creates a new ReconcileTimeouts use case
func NewReconcileTimeouts(
	bookingRepository domain.BookingRepository,
	sagaRepository domain.SagaRepository,
	jobQueue queue.Queue,
	transitionLog events.TransitionLog,
	eventPublisher events.Publisher,
	policy SagaPolicy,
) *ReconcileTimeouts {
	return &ReconcileTimeouts{
		bookingRepository: bookingRepository,
		sagaRepository:    sagaRepository,
		jobQueue:          jobQueue,
		transitionLog:     transitionLog,
		eventPublisher:    eventPublisher,
		policy:            policy,
	}
}

// Execute executes one reconcile sweep
func (uc *ReconcileTimeouts) Execute(ctx context.Context) (*ReconcileReport, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReconcileTimeouts.Execute")
	defer span.End()

	now := time.Now()
	stalled, err := uc.sagaRepository.FindStalled(ctx, now.Add(-uc.policy.StepTimeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find stalled sagas")
	}

	report := &ReconcileReport{}
	for _, instance := range stalled {
		if err := uc.reconcile(ctx, instance, now, report); err != nil {
			// One stuck saga must not starve the sweep.
			if errors.Is(err, domain.ErrVersionConflict) {
				report.Skipped++
				continue
			}
			log.Printf("reconcile: booking %s: %v", instance.BookingID, err)
			report.Skipped++
		}
	}

	telemetry.RecordCounter(ctx, "reconcile_requeued_total", "Stalled steps re-dispatched", int64(report.Requeued))
	telemetry.RecordCounter(ctx, "reconcile_failed_total", "Stalled steps failed over budget", int64(report.Failed))

	return report, nil
}

func (uc *ReconcileTimeouts) reconcile(ctx context.Context, instance *domain.SagaInstance, now time.Time, report *ReconcileReport) error {
	step, ok := instance.CurrentStep()
	if !ok {
		return nil
	}

	booking, err := uc.bookingRepository.FindByID(ctx, instance.BookingID)
	if err != nil {
		return errors.Wrap(err, "failed to load booking")
	}

	if instance.AttemptCount(step) < uc.policy.BudgetFor(step) {
		return uc.requeue(ctx, booking, instance, step, now, report)
	}
	return uc.failStep(ctx, booking, instance, step, now, report)
}

func (uc *ReconcileTimeouts) requeue(ctx context.Context, booking *domain.Booking, instance *domain.SagaInstance, step saga.StepKind, now time.Time, report *ReconcileReport) error {
	job, err := buildStepJob(booking, instance, step)
	if err != nil {
		return err
	}

	attempt := instance.RecordAttempt(step)
	job.Attempt = attempt
	job.NotBefore = now.Add(queue.Backoff(attempt))
	instance.RestartStep(now)

	if err := uc.sagaRepository.Save(ctx, instance); err != nil {
		return err
	}

	if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
		return errors.Wrapf(err, "failed to re-enqueue %s job", step)
	}

	telemetry.RecordCounter(ctx, "step_redispatches_total", "Stalled step re-dispatches", 1,
		attribute.String("step", string(step)),
		attribute.Int("attempt", attempt),
	)

	report.Requeued++
	return nil
}

func (uc *ReconcileTimeouts) failStep(ctx context.Context, booking *domain.Booking, instance *domain.SagaInstance, step saga.StepKind, now time.Time, report *ReconcileReport) error {
	failEvent, ok := saga.FailureEvent(step)
	if !ok {
		return errors.Errorf("no failure event for step %s", step)
	}

	attempts := instance.AttemptCount(step)

	applied, err := instance.Apply(failEvent, domain.ReasonStepTimeout, now)
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	reason := domain.ReasonStepTimeout
	if failEvent == saga.EventReleaseExhausted {
		reason = domain.ReasonDeadLetter
	}

	if err := booking.MoveTo(instance.State, reason); err != nil {
		return errors.Wrap(err, "failed to move booking")
	}

	jobs := make([]*queue.Job, 0, 2)
	if nextStep, ok := instance.CurrentStep(); ok {
		job, err := buildStepJob(booking, instance, nextStep)
		if err != nil {
			return err
		}
		instance.RecordAttempt(nextStep)
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

	deadLetter := events.NewEvent(booking.ID, events.BookingDeadLetterEvent, DeadLetterData{
		BookingID: booking.ID.String(),
		Step:      string(step),
		Attempts:  attempts,
	})

	logged := append(booking.Events(), deadLetter)
	if err := uc.transitionLog.Append(ctx, booking.ID, logged); err != nil {
		return errors.Wrap(err, "failed to append transition log")
	}
	if err := uc.eventPublisher.Publish(ctx, logged...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	booking.ClearEvents()

	for _, job := range jobs {
		if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
			return errors.Wrapf(err, "failed to enqueue %s job", job.Step)
		}
	}

	report.Failed++
	return nil
}
