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

// CreateBookingCommand represents the command to create a booking
type CreateBookingCommand struct {
	UserID      string   `json:"user_id"`
	EventID     string   `json:"event_id"`
	Seats       int      `json:"seats"`
	SeatNumbers []string `json:"seat_numbers,omitempty"`
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency"`
}

// CreateBookingResponse represents the response after creating a booking
type CreateBookingResponse struct {
	BookingID string `json:"booking_id"`
	State     string `json:"state"`
}

// CreateBooking use case: accept the request, open the saga and dispatch the
// reserve step. Booking and saga rows are persisted before the job is
// enqueued so a crash leaves a reconcilable record, never an untracked job.
type CreateBooking struct {
	bookingRepository domain.BookingRepository
	sagaRepository    domain.SagaRepository
	jobQueue          queue.Queue
	transitionLog     events.TransitionLog
	eventPublisher    events.Publisher
}

// NewCreateBooking creates a new CreateBooking use case
func NewCreateBooking(
	bookingRepository domain.BookingRepository,
	sagaRepository domain.SagaRepository,
	jobQueue queue.Queue,
	transitionLog events.TransitionLog,
	eventPublisher events.Publisher,
) *CreateBooking {
	return &CreateBooking{
		bookingRepository: bookingRepository,
		sagaRepository:    sagaRepository,
		jobQueue:          jobQueue,
		transitionLog:     transitionLog,
		eventPublisher:    eventPublisher,
	}
}

// Execute executes the create booking use case
func (uc *CreateBooking) Execute(ctx context.Context, cmd *CreateBookingCommand) (*CreateBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateBooking.Execute")
	defer span.End()

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return nil, domain.NewValidationError("user_id", "is not a valid ID")
	}

	eventID, err := models.NewID(cmd.EventID)
	if err != nil {
		return nil, domain.NewValidationError("event_id", "is not a valid ID")
	}

	amount := models.NewMoney(cmd.Amount, cmd.Currency)

	booking, err := domain.CreateBooking(userID, eventID, cmd.Seats, cmd.SeatNumbers, amount)
	if err != nil {
		return nil, err
	}

	instance := domain.NewSagaInstance(booking.ID)

	now := time.Now()
	if _, err := instance.Apply(saga.EventReserveRequested, "", now); err != nil {
		return nil, errors.Wrap(err, "failed to open saga")
	}
	instance.RecordAttempt(saga.StepReserve)

	if err := booking.MoveTo(instance.State, ""); err != nil {
		return nil, errors.Wrap(err, "failed to move booking")
	}

	job, err := buildStepJob(booking, instance, saga.StepReserve)
	if err != nil {
		return nil, err
	}

	if err := uc.bookingRepository.Save(ctx, booking); err != nil {
		return nil, errors.Wrap(err, "failed to save booking")
	}

	if err := uc.sagaRepository.Save(ctx, instance); err != nil {
		return nil, errors.Wrap(err, "failed to save saga instance")
	}

	if err := uc.transitionLog.Append(ctx, booking.ID, booking.Events()); err != nil {
		return nil, errors.Wrap(err, "failed to append transition log")
	}

	if err := uc.eventPublisher.Publish(ctx, booking.Events()...); err != nil {
		return nil, errors.Wrap(err, "failed to publish events")
	}
	booking.ClearEvents()

	if err := uc.jobQueue.Enqueue(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to enqueue reserve job")
	}

	telemetry.RecordCounter(ctx, "bookings_created_total", "Total bookings created", 1,
		attribute.String("event_id", booking.EventID.String()),
	)

	return &CreateBookingResponse{
		BookingID: booking.ID.String(),
		State:     string(booking.State),
	}, nil
}

// validateCommand validates the create booking command
func (uc *CreateBooking) validateCommand(cmd *CreateBookingCommand) error {
	if cmd.UserID == "" {
		return domain.NewValidationError("user_id", "is required")
	}

	if cmd.EventID == "" {
		return domain.NewValidationError("event_id", "is required")
	}

	if cmd.Seats <= 0 {
		return domain.NewValidationError("seats", "must be positive")
	}

	if len(cmd.SeatNumbers) > 0 && len(cmd.SeatNumbers) != cmd.Seats {
		return domain.NewValidationError("seat_numbers", "must match seat count")
	}

	if cmd.Amount <= 0 {
		return domain.NewValidationError("amount", "must be positive")
	}

	if cmd.Currency == "" {
		return domain.NewValidationError("currency", "is required")
	}

	return nil
}
