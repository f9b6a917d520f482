package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// Reason codes surfaced on cancelled bookings
const (
	ReasonSeatsUnavailable = "seats_unavailable"
	ReasonPaymentDeclined  = "payment_declined"
	ReasonStepTimeout      = "step_timeout"
	ReasonUserCancelled    = "user_cancelled"
	ReasonDeadLetter       = "dead_letter"
)

// Booking aggregate root. State mirrors the saga instance driving it; the
// booking row is what the status API serves.
type Booking struct {
	ID          models.ID
	UserID      models.ID
	EventID     models.ID
	Seats       int
	SeatNumbers []string
	Amount      models.Money
	State       saga.State
	ReasonCode  string
	Timestamps  models.Timestamps
	Version     models.Version

	events []*events.Event
}

// CreateBooking factory method
func CreateBooking(userID, eventID models.ID, seats int, seatNumbers []string, amount models.Money) (*Booking, error) {
	if userID.IsEmpty() {
		return nil, NewValidationError("user_id", "is required")
	}
	if eventID.IsEmpty() {
		return nil, NewValidationError("event_id", "is required")
	}
	if seats <= 0 {
		return nil, NewValidationError("seats", "must be positive")
	}
	if len(seatNumbers) > 0 && len(seatNumbers) != seats {
		return nil, NewValidationError("seat_numbers", "must match seat count")
	}
	if !amount.IsPositive() {
		return nil, NewValidationError("amount", "must be positive")
	}

	booking := &Booking{
		ID:          models.GenerateUUID(),
		UserID:      userID,
		EventID:     eventID,
		Seats:       seats,
		SeatNumbers: seatNumbers,
		Amount:      amount,
		State:       saga.StateCreated,
		Timestamps:  models.NewTimestamps(),
		Version:     models.NewVersion(),
	}

	event := events.NewEvent(booking.ID, events.BookingCreatedEvent, BookingCreatedData{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		EventID:     booking.EventID,
		Seats:       booking.Seats,
		SeatNumbers: booking.SeatNumbers,
		Amount:      booking.Amount,
	})

	booking.recordEvent(event)
	return booking, nil
}

// MoveTo advances the booking to the saga state reached by an applied
// transition. Terminal and escalation states record their own event types so
// external observers need not diff state strings.
func (b *Booking) MoveTo(state saga.State, reasonCode string) error {
	if b.State == state {
		if b.ReasonCode == "" && reasonCode != "" {
			b.ReasonCode = reasonCode
		}
		return nil
	}
	if b.State.Terminal() {
		return errors.Errorf("booking %s is already %s", b.ID, b.State)
	}

	from := b.State
	b.State = state
	if reasonCode != "" {
		b.ReasonCode = reasonCode
	}
	b.Timestamps = b.Timestamps.Update()
	b.Version = b.Version.Update()

	b.recordEvent(events.NewEvent(b.ID, events.BookingStateChangedEvent, BookingStateChangedData{
		BookingID:  b.ID,
		From:       from,
		To:         state,
		ReasonCode: b.ReasonCode,
	}))

	switch state {
	case saga.StateConfirmed:
		b.recordEvent(events.NewEvent(b.ID, events.BookingConfirmedEvent, BookingConfirmedData{
			BookingID:   b.ID,
			UserID:      b.UserID,
			EventID:     b.EventID,
			Seats:       b.Seats,
			Amount:      b.Amount,
			ConfirmedAt: time.Now(),
		}))
	case saga.StateCancelled:
		b.recordEvent(events.NewEvent(b.ID, events.BookingCancelledEvent, BookingCancelledData{
			BookingID:   b.ID,
			UserID:      b.UserID,
			ReasonCode:  b.ReasonCode,
			CancelledAt: time.Now(),
		}))
	case saga.StateManualReview:
		b.recordEvent(events.NewEvent(b.ID, events.BookingManualReviewEvent, BookingManualReviewData{
			BookingID:  b.ID,
			UserID:     b.UserID,
			ReasonCode: b.ReasonCode,
			FlaggedAt:  time.Now(),
		}))
	}

	return nil
}

// Events returns domain events
func (b *Booking) Events() []*events.Event {
	return b.events
}

// ClearEvents clears domain events
func (b *Booking) ClearEvents() {
	b.events = make([]*events.Event, 0)
}

func (b *Booking) recordEvent(event *events.Event) {
	b.events = append(b.events, event)
}

// Event Data Structures
type BookingCreatedData struct {
	BookingID   models.ID    `json:"booking_id"`
	UserID      models.ID    `json:"user_id"`
	EventID     models.ID    `json:"event_id"`
	Seats       int          `json:"seats"`
	SeatNumbers []string     `json:"seat_numbers,omitempty"`
	Amount      models.Money `json:"amount"`
}

type BookingStateChangedData struct {
	BookingID  models.ID  `json:"booking_id"`
	From       saga.State `json:"from"`
	To         saga.State `json:"to"`
	ReasonCode string     `json:"reason_code,omitempty"`
}

type BookingConfirmedData struct {
	BookingID   models.ID    `json:"booking_id"`
	UserID      models.ID    `json:"user_id"`
	EventID     models.ID    `json:"event_id"`
	Seats       int          `json:"seats"`
	Amount      models.Money `json:"amount"`
	ConfirmedAt time.Time    `json:"confirmed_at"`
}

type BookingCancelledData struct {
	BookingID   models.ID `json:"booking_id"`
	UserID      models.ID `json:"user_id"`
	ReasonCode  string    `json:"reason_code"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type BookingManualReviewData struct {
	BookingID  models.ID `json:"booking_id"`
	UserID     models.ID `json:"user_id"`
	ReasonCode string    `json:"reason_code"`
	FlaggedAt  time.Time `json:"flagged_at"`
}

// BookingRepository interface
type BookingRepository interface {
	Save(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id models.ID) (*Booking, error)
	FindByUserID(ctx context.Context, userID models.ID) ([]*Booking, error)
}
