package application

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/coordinator-service/domain"
	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/telemetry"
)

// GetBookingHistoryQuery represents the query for a booking's transition log
type GetBookingHistoryQuery struct {
	BookingID string
}

// TransitionView is one logged transition event in the history response
type TransitionView struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Data      interface{}     `json:"data,omitempty"`
	Metadata  events.Metadata `json:"metadata,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// BookingHistoryResponse is the full audit trail of a booking
type BookingHistoryResponse struct {
	BookingID   string           `json:"booking_id"`
	Transitions []TransitionView `json:"transitions"`
}

// GetBookingHistory use case: serve the append-only transition log as the
// booking's audit trail. The saga snapshot answers "where is it now"; this
// answers "how did it get there", including dead-letter and refund markers
// that never move the saga.
type GetBookingHistory struct {
	bookingRepository domain.BookingRepository
	transitionLog     events.TransitionLog
}

// NewGetBookingHistory creates a new GetBookingHistory use case
func NewGetBookingHistory(
	bookingRepository domain.BookingRepository,
	transitionLog events.TransitionLog,
) *GetBookingHistory {
	return &GetBookingHistory{
		bookingRepository: bookingRepository,
		transitionLog:     transitionLog,
	}
}

// Execute executes the get booking history use case
func (uc *GetBookingHistory) Execute(ctx context.Context, query *GetBookingHistoryQuery) (*BookingHistoryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "GetBookingHistory.Execute")
	defer span.End()

	bookingID, err := models.NewID(query.BookingID)
	if err != nil {
		return nil, domain.NewValidationError("booking_id", "is not a valid ID")
	}

	// An empty log is ambiguous between "no booking" and "nothing logged
	// yet"; the booking row disambiguates.
	if _, err := uc.bookingRepository.FindByID(ctx, bookingID); err != nil {
		return nil, errors.Wrap(err, "failed to load booking")
	}

	logged, err := uc.transitionLog.History(ctx, bookingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transition history")
	}

	transitions := make([]TransitionView, 0, len(logged))
	for _, event := range logged {
		transitions = append(transitions, TransitionView{
			EventID:   event.ID.String(),
			EventType: event.EventType,
			Data:      event.Data,
			Metadata:  event.Metadata,
			Timestamp: event.Timestamp,
		})
	}

	return &BookingHistoryResponse{
		BookingID:   bookingID.String(),
		Transitions: transitions,
	}, nil
}
