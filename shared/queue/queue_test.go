package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketflow/booking-system/shared/models"
	"github.com/ticketflow/booking-system/shared/saga"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{attempt: 0, expected: 0},
		{attempt: 1, expected: 0},
		{attempt: 2, expected: 2 * time.Second},
		{attempt: 3, expected: 4 * time.Second},
		{attempt: 4, expected: 8 * time.Second},
		{attempt: 20, expected: 5 * time.Minute},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestJob_Retry(t *testing.T) {
	bookingID := models.GenerateUUID()
	job, err := NewJob(bookingID, saga.StepReserve, ReservePayload{
		EventID: models.GenerateUUID(),
		UserID:  models.GenerateUUID(),
		Seats:   1,
	})
	require.NoError(t, err)
	job.WithReceipt("receipt-1")

	now := time.Now()
	retry := job.Retry(now)

	assert.Equal(t, 2, retry.Attempt)
	assert.Equal(t, job.BookingID, retry.BookingID)
	assert.Equal(t, job.Payload, retry.Payload)
	assert.NotEqual(t, job.ID, retry.ID)
	assert.Empty(t, retry.Receipt())
	assert.Equal(t, now.Add(Backoff(2)), retry.NotBefore)

	assert.False(t, retry.Due(now))
	assert.True(t, retry.Due(now.Add(Backoff(2))))
	assert.True(t, job.Due(now))
}

func TestJob_UnmarshalPayload(t *testing.T) {
	bookingID := models.GenerateUUID()
	job, err := NewJob(bookingID, saga.StepCharge, ChargePayload{
		UserID:         models.GenerateUUID(),
		Amount:         models.NewMoney(5000, "USD"),
		IdempotencyKey: IdempotencyKey(bookingID, saga.StepCharge),
	})
	require.NoError(t, err)

	var payload ChargePayload
	require.NoError(t, job.UnmarshalPayload(&payload))
	assert.Equal(t, int64(5000), payload.Amount.Amount)
	assert.Equal(t, bookingID.String()+":charge", payload.IdempotencyKey)
}

func TestIdempotencyKey(t *testing.T) {
	bookingID := models.ID("550e8400-e29b-41d4-a716-446655440001")

	key := IdempotencyKey(bookingID, saga.StepCharge)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440001:charge", key)
	assert.NotEqual(t, key, IdempotencyKey(bookingID, saga.StepRefund))
}
