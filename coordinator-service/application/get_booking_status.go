package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/telemetry"
)

// GetBookingStatusQuery represents the query for a booking status
type GetBookingStatusQuery struct {
	BookingID string
}

// StepRecordView is one saga history entry in the status response
type StepRecordView struct {
	Event  string    `json:"event"`
	Step   string    `json:"step,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// BookingStatusResponse is the booking plus its saga snapshot
type BookingStatusResponse struct {
	BookingID   string           `json:"booking_id"`
	UserID      string           `json:"user_id"`
	EventID     string           `json:"event_id"`
	Seats       int              `json:"seats"`
	SeatNumbers []string         `json:"seat_numbers,omitempty"`
	Amount      models.Money     `json:"amount"`
	State       string           `json:"state"`
	ReasonCode  string           `json:"reason_code,omitempty"`
	History     []StepRecordView `json:"history"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GetBookingStatus use case
type GetBookingStatus struct {
	bookingRepository domain.BookingRepository
	sagaRepository    domain.SagaRepository
}

// NewGetBookingStatus creates a new GetBookingStatus use case
func NewGetBookingStatus(
	bookingRepository domain.BookingRepository,
	sagaRepository domain.SagaRepository,
) *GetBookingStatus {
	return &GetBookingStatus{
		bookingRepository: bookingRepository,
		sagaRepository:    sagaRepository,
	}
}

// Execute executes the get booking status use case
func (uc *GetBookingStatus) Execute(ctx context.Context, query *GetBookingStatusQuery) (*BookingStatusResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "GetBookingStatus.Execute")
	defer span.End()

	bookingID, err := models.NewID(query.BookingID)
	if err != nil {
		return nil, domain.NewValidationError("booking_id", "is not a valid ID")
	}

	booking, err := uc.bookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load booking")
	}

	instance, err := uc.sagaRepository.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load saga instance")
	}

	history := make([]StepRecordView, 0, len(instance.History))
	for _, record := range instance.History {
		history = append(history, StepRecordView{
			Event:  string(record.Event),
			Step:   string(record.Step),
			Detail: record.Detail,
			At:     record.At,
		})
	}

	return &BookingStatusResponse{
		BookingID:   booking.ID.String(),
		UserID:      booking.UserID.String(),
		EventID:     booking.EventID.String(),
		Seats:       booking.Seats,
		SeatNumbers: booking.SeatNumbers,
		Amount:      booking.Amount,
		State:       string(booking.State),
		ReasonCode:  booking.ReasonCode,
		History:     history,
		CreatedAt:   booking.Timestamps.CreatedAt,
		UpdatedAt:   booking.Timestamps.UpdatedAt,
	}, nil
}
