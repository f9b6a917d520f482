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

// CancelBookingCommand represents the command to cancel a booking
type CancelBookingCommand struct {
	BookingID string `json:"booking_id"`
}

// CancelBookingResponse represents the state after the cancellation request
type CancelBookingResponse struct {
	BookingID string `json:"booking_id"`
	State     string `json:"state"`
}

// CancelBooking use case: user or operator cancellation. A booking that has
// not reserved anything cancels immediately; one with work in flight or
// completed moves to Compensating and unwinds through release.
type CancelBooking struct {
	bookingRepository domain.BookingRepository
	sagaRepository    domain.SagaRepository
	jobQueue          queue.Queue
	transitionLog     events.TransitionLog
	eventPublisher    events.Publisher
}

// NewCancelBooking creates a new CancelBooking use case
func NewCancelBooking(
	bookingRepository domain.BookingRepository,
	sagaRepository domain.SagaRepository,
	jobQueue queue.Queue,
	transitionLog events.TransitionLog,
	eventPublisher events.Publisher,
) *CancelBooking {
	return &CancelBooking{
		bookingRepository: bookingRepository,
		sagaRepository:    sagaRepository,
		jobQueue:          jobQueue,
		transitionLog:     transitionLog,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the cancel booking use case
func (uc *CancelBooking) Execute(ctx context.Context, cmd *CancelBookingCommand) (*CancelBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CancelBooking.Execute")
	defer span.End()

	bookingID, err := models.NewID(cmd.BookingID)
	if err != nil {
		return nil, domain.NewValidationError("booking_id", "is not a valid ID")
	}

	var response *CancelBookingResponse
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		response, lastErr = uc.cancel(ctx, bookingID)
		if !errors.Is(lastErr, domain.ErrVersionConflict) {
			return response, lastErr
		}
	}
	return nil, errors.Wrap(lastErr, "cancellation kept conflicting")
}

func (uc *CancelBooking) cancel(ctx context.Context, bookingID models.ID) (*CancelBookingResponse, error) {
	instance, err := uc.sagaRepository.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load saga instance")
	}

	booking, err := uc.bookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load booking")
	}

	if instance.State == saga.StateCancelled {
		// Cancelling a cancelled booking is a no-op, not an error.
		return &CancelBookingResponse{BookingID: bookingID.String(), State: string(instance.State)}, nil
	}
	if instance.State == saga.StateCompensating {
		// Already unwinding, whether from an earlier cancellation or a failed
		// charge. The outcome the caller asked for is underway.
		return &CancelBookingResponse{BookingID: bookingID.String(), State: string(instance.State)}, nil
	}
	if instance.State == saga.StateConfirmed {
		return nil, domain.NewValidationError("booking_id", "is already confirmed")
	}

	now := time.Now()
	applied, err := instance.Apply(saga.EventCancelRequested, domain.ReasonUserCancelled, now)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &CancelBookingResponse{BookingID: bookingID.String(), State: string(instance.State)}, nil
	}

	if err := booking.MoveTo(instance.State, domain.ReasonUserCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to move booking")
	}

	jobs := make([]*queue.Job, 0, 2)
	if nextStep, ok := instance.CurrentStep(); ok {
		job, err := buildStepJob(booking, instance, nextStep)
		if err != nil {
			return nil, err
		}
		instance.RecordAttempt(nextStep)
		jobs = append(jobs, job)
	}
	if booking.State.Terminal() {
		job, err := buildStepJob(booking, instance, saga.StepNotify)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := uc.bookingRepository.Save(ctx, booking); err != nil {
		return nil, err
	}
	if err := uc.sagaRepository.Save(ctx, instance); err != nil {
		return nil, err
	}

	if err := uc.transitionLog.Append(ctx, booking.ID, booking.Events()); err != nil {
		return nil, errors.Wrap(err, "failed to append transition log")
	}
	if err := uc.eventPublisher.Publish(ctx, booking.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	booking.ClearEvents()

	for _, job := range jobs {
		if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
			return nil, errors.Wrapf(err, "failed to enqueue %s job", job.Step)
		}
	}

	telemetry.RecordCounter(ctx, "bookings_cancel_requested_total", "Cancellation requests applied", 1,
		attribute.String("to_state", string(instance.State)),
	)

	return &CancelBookingResponse{BookingID: bookingID.String(), State: string(instance.State)}, nil
}
