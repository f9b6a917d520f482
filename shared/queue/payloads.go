package queue

import (
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

// Step payloads. The coordinator builds them from the booking aggregate; the
// worker decodes the one matching the job's step kind.

type ReservePayload struct {
	EventID     models.ID `json:"event_id"`
	UserID      models.ID `json:"user_id"`
	Seats       int       `json:"seats"`
	SeatNumbers []string  `json:"seat_numbers,omitempty"`
}

type ReleasePayload struct {
	EventID models.ID `json:"event_id"`
	// ReservationRef is empty when cancellation raced the reserve step; the
	// worker then releases by booking instead of by reference.
	ReservationRef string `json:"reservation_ref,omitempty"`
}

type ChargePayload struct {
	UserID         models.ID    `json:"user_id"`
	Amount         models.Money `json:"amount"`
	IdempotencyKey string       `json:"idempotency_key"`
}

type RefundPayload struct {
	ChargeRef string       `json:"charge_ref"`
	Amount    models.Money `json:"amount"`
}

type NotifyPayload struct {
	UserID     models.ID    `json:"user_id"`
	EventID    models.ID    `json:"event_id"`
	State      saga.State   `json:"state"`
	ReasonCode string       `json:"reason_code,omitempty"`
	Seats      int          `json:"seats"`
	Amount     models.Money `json:"amount"`
}

// IdempotencyKey derives the store key for a booking step. One economic
// effect per (booking, step) pair.
func IdempotencyKey(bookingID models.ID, step saga.StepKind) string {
	return bookingID.String() + ":" + string(step)
}
