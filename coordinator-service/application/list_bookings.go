package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/telemetry"
)

// ListBookingsQuery represents the query for a user's bookings
type ListBookingsQuery struct {
	UserID string
}

// BookingSummary is one booking in a listing response
type BookingSummary struct {
	BookingID  string       `json:"booking_id"`
	EventID    string       `json:"event_id"`
	Seats      int          `json:"seats"`
	Amount     models.Money `json:"amount"`
	State      string       `json:"state"`
	ReasonCode string       `json:"reason_code,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ListBookingsResponse holds all bookings belonging to a user
type ListBookingsResponse struct {
	UserID   string           `json:"user_id"`
	Bookings []BookingSummary `json:"bookings"`
}

// ListBookings use case
type ListBookings struct {
	bookingRepository domain.BookingRepository
}

// NewListBookings creates a new ListBookings use case
func NewListBookings(bookingRepository domain.BookingRepository) *ListBookings {
	return &ListBookings{
		bookingRepository: bookingRepository,
	}
}

// Execute executes the list bookings use case
func (uc *ListBookings) Execute(ctx context.Context, query *ListBookingsQuery) (*ListBookingsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ListBookings.Execute")
	defer span.End()

	userID, err := models.NewID(query.UserID)
	if err != nil {
		return nil, domain.NewValidationError("user_id", "is not a valid ID")
	}

	bookings, err := uc.bookingRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load bookings")
	}

	summaries := make([]BookingSummary, 0, len(bookings))
	for _, booking := range bookings {
		summaries = append(summaries, BookingSummary{
			BookingID:  booking.ID.String(),
			EventID:    booking.EventID.String(),
			Seats:      booking.Seats,
			Amount:     booking.Amount,
			State:      string(booking.State),
			ReasonCode: booking.ReasonCode,
			CreatedAt:  booking.Timestamps.CreatedAt,
		})
	}

	return &ListBookingsResponse{
		UserID:   userID.String(),
		Bookings: summaries,
	}, nil
}
