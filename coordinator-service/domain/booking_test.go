package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/booking-system/shared/events"
	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func newBooking(t *testing.T) *Booking {
	t.Helper()

	booking, err := CreateBooking(
		models.GenerateUUID(),
		models.GenerateUUID(),
		2,
		[]string{"A1", "A2"},
		models.NewMoney(5000, "USD"),
	)
	require.NoError(t, err)
	return booking
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name          string
		seats         int
		seatNumbers   []string
		amount        models.Money
		expectedError string
	}{
		{
			name:   "valid booking",
			seats:  2,
			amount: models.NewMoney(5000, "USD"),
		},
		{
			name:          "zero seats",
			seats:         0,
			amount:        models.NewMoney(5000, "USD"),
			expectedError: "must be positive",
		},
		{
			name:          "seat numbers not matching count",
			seats:         2,
			seatNumbers:   []string{"A1"},
			amount:        models.NewMoney(5000, "USD"),
			expectedError: "must match seat count",
		},
		{
			name:          "zero amount",
			seats:         1,
			amount:        models.NewMoney(0, "USD"),
			expectedError: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, err := CreateBooking(models.GenerateUUID(), models.GenerateUUID(), tt.seats, tt.seatNumbers, tt.amount)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.True(t, IsValidationError(err))
				assert.Nil(t, booking)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, saga.StateCreated, booking.State)
			assert.False(t, booking.ID.IsEmpty())
			require.Len(t, booking.Events(), 1)
			assert.Equal(t, events.BookingCreatedEvent, booking.Events()[0].EventType)
		})
	}
}

func TestBooking_MoveTo(t *testing.T) {
	t.Run("records a state change event", func(t *testing.T) {
		booking := newBooking(t)
		booking.ClearEvents()

		require.NoError(t, booking.MoveTo(saga.StateReserving, ""))

		require.Len(t, booking.Events(), 1)
		assert.Equal(t, events.BookingStateChangedEvent, booking.Events()[0].EventType)
		assert.Equal(t, 2, booking.Version.Value)
	})

	t.Run("terminal states record their own event type", func(t *testing.T) {
		booking := newBooking(t)
		booking.ClearEvents()

		require.NoError(t, booking.MoveTo(saga.StateCompensating, ReasonPaymentDeclined))
		require.NoError(t, booking.MoveTo(saga.StateCancelled, ""))

		types := make([]string, 0, len(booking.Events()))
		for _, evt := range booking.Events() {
			types = append(types, evt.EventType)
		}
		assert.Contains(t, types, events.BookingCancelledEvent)
		assert.Equal(t, ReasonPaymentDeclined, booking.ReasonCode)
	})

	t.Run("moving a terminal booking fails", func(t *testing.T) {
		booking := newBooking(t)
		require.NoError(t, booking.MoveTo(saga.StateCancelled, ReasonUserCancelled))

		err := booking.MoveTo(saga.StateReserving, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already cancelled")
	})

	t.Run("moving to the current state is a no-op", func(t *testing.T) {
		booking := newBooking(t)
		require.NoError(t, booking.MoveTo(saga.StateReserving, ""))
		booking.ClearEvents()
		version := booking.Version

		require.NoError(t, booking.MoveTo(saga.StateReserving, ""))
		assert.Empty(t, booking.Events())
		assert.Equal(t, version, booking.Version)
	})

	t.Run("manual review is flagged for operators", func(t *testing.T) {
		booking := newBooking(t)
		booking.ClearEvents()

		require.NoError(t, booking.MoveTo(saga.StateManualReview, ReasonDeadLetter))

		types := make([]string, 0, len(booking.Events()))
		for _, evt := range booking.Events() {
			types = append(types, evt.EventType)
		}
		assert.Contains(t, types, events.BookingManualReviewEvent)
	})
}
