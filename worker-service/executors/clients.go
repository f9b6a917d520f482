package executors

import (
	"context"

	"github.com/ticketflow/booking-system/shared/models"
)

// ReserveRequest asks the reservation service to hold seats for a booking
type ReserveRequest struct {
	BookingID   models.ID
	EventID     models.ID
	UserID      models.ID
	Seats       int
	SeatNumbers []string
}

// ReservationClient talks to the reservation service. Reserve is keyed by
// booking on the collaborator side, so redelivery of the same request holds
// the same seats once.
type ReservationClient interface {
	Reserve(ctx context.Context, req ReserveRequest) (string, error)
	// Release frees a held reservation. An empty ref releases whatever the
	// collaborator holds for the booking, covering a cancel that raced the
	// reserve call.
	Release(ctx context.Context, ref string, eventID, bookingID models.ID) error
}

// ChargeRequest asks the payment service to move money once
type ChargeRequest struct {
	BookingID      models.ID
	UserID         models.ID
	Amount         models.Money
	IdempotencyKey string
}

// PaymentClient talks to the payment service
type PaymentClient interface {
	Charge(ctx context.Context, req ChargeRequest) (string, error)
	// Lookup reports whether a charge with the idempotency key was applied,
	// returning its reference when it was.
	Lookup(ctx context.Context, idempotencyKey string) (string, bool, error)
	Refund(ctx context.Context, chargeRef string, amount models.Money) (string, error)
}

// Notification carries the booking summary for user-facing fan-out
type Notification struct {
	BookingID  models.ID
	UserID     models.ID
	EventID    models.ID
	State      string
	ReasonCode string
	Seats      int
	Amount     models.Money
}

// NotificationClient talks to the notification service
type NotificationClient interface {
	Send(ctx context.Context, note Notification) error
}
